package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"annals/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument represents the YAML structure for entry data.
// Details stay a node so exported numbers keep their exact text.
type yamlDocument struct {
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	ID      int64      `yaml:"id,omitempty"`
	Name    string     `yaml:"name"`
	Details *yaml.Node `yaml:"details"`
}

// Parse imports entries from YAML
func (c *YAMLCodec) Parse(r io.Reader) ([]domain.EntryInput, error) {
	var doc yamlDocument
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	inputs := make([]domain.EntryInput, 0, len(doc.Entries))
	for i, ye := range doc.Entries {
		in := domain.EntryInput{Name: ye.Name}
		if ye.Details != nil {
			var v any
			if err := ye.Details.Decode(&v); err != nil {
				return nil, fmt.Errorf("entry %d: failed to decode details: %w", i, err)
			}
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("entry %d: details are not representable as JSON: %w", i, err)
			}
			in.Details = raw
		}
		inputs = append(inputs, in)
	}

	return inputs, nil
}

// Export exports entries to YAML
func (c *YAMLCodec) Export(entries []domain.Entry, w io.Writer) error {
	doc := yamlDocument{Entries: make([]yamlEntry, 0, len(entries))}

	for _, e := range entries {
		details, err := detailsNode(e.Details)
		if err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
		doc.Entries = append(doc.Entries, yamlEntry{
			ID:      e.ID,
			Name:    e.Name,
			Details: details,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// detailsNode parses JSON details as YAML, which is a superset of JSON,
// and switches collections to block style.
func detailsNode(raw json.RawMessage) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert details: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("failed to convert details: empty document")
	}

	node := doc.Content[0]
	blockStyle(node)
	return node, nil
}

func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style &^= yaml.FlowStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
