package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"annals/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

type jsonImport struct {
	Entries []domain.EntryInput `json:"entries"`
}

type jsonExport struct {
	Entries []domain.Entry `json:"entries"`
}

// Parse imports entries from JSON
func (c *JSONCodec) Parse(r io.Reader) ([]domain.EntryInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to parse JSON: document is not valid UTF-8")
	}

	// The document must be exactly one JSON value.
	var doc jsonImport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Export indents details; store them compact again.
	for i, in := range doc.Entries {
		var buf bytes.Buffer
		if err := json.Compact(&buf, in.Details); err == nil {
			doc.Entries[i].Details = buf.Bytes()
		}
	}

	return doc.Entries, nil
}

// Export exports entries to JSON
func (c *JSONCodec) Export(entries []domain.Entry, w io.Writer) error {
	if entries == nil {
		entries = []domain.Entry{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(jsonExport{Entries: entries}); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
