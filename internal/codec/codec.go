// Package codec reads and writes bulk entry documents.
//
// A document holds a single "entries" list. Imported entries carry a name and
// details; any id is ignored. Exported entries carry their id.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"annals/internal/domain"
)

// Importer interface for importing entries from various formats
type Importer interface {
	Parse(r io.Reader) ([]domain.EntryInput, error)
	Format() string
}

// Exporter interface for exporting entries to various formats
type Exporter interface {
	Export(entries []domain.Entry, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
}

// ByFormat returns the codec for a format name
func ByFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("unsupported format: %q, expected: [json, yaml]", format)
}

// FormatFromPath guesses the format from a file extension, defaulting to json
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}
