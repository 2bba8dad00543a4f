package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the upper bound on an entry name, counted in characters.
const MaxNameLength = 200

// Entry is a historical entry as persisted by the store
type Entry struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Details json.RawMessage `json:"details"`
}

// EntryInput holds the mutable fields of an entry.
// Create and update always supply both fields; there are no partial updates.
type EntryInput struct {
	Name    string          `json:"name"`
	Details json.RawMessage `json:"details"`
}

// NewEntryInput builds an input from a name and any JSON-marshalable value
func NewEntryInput(name string, details any) (EntryInput, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return EntryInput{}, ErrInvalid("details", err.Error())
	}
	return EntryInput{Name: name, Details: raw}, nil
}

// Normalize trims surrounding whitespace from the name.
// Details are left untouched so they round-trip verbatim.
func (in EntryInput) Normalize() EntryInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// Validate checks required fields, the name length and the details JSON
func (in EntryInput) Validate() error {
	if !utf8.ValidString(in.Name) {
		return ErrInvalid("name", "Not a valid string.")
	}
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalid("name", "This field is required.")
	}
	if utf8.RuneCountInString(in.Name) > MaxNameLength {
		return ErrInvalid("name", "Ensure this field has no more than 200 characters.")
	}

	details := bytes.TrimSpace(in.Details)
	if len(details) == 0 {
		return ErrInvalid("details", "This field is required.")
	}
	if !utf8.Valid(details) || !json.Valid(details) {
		return ErrInvalid("details", "Value must be valid JSON.")
	}
	if bytes.Equal(details, []byte("null")) {
		return ErrInvalid("details", "This field may not be null.")
	}
	return nil
}

// Apply returns the entry with id carrying the input's fields
func (in EntryInput) Apply(id int64) *Entry {
	return &Entry{ID: id, Name: in.Name, Details: in.Details}
}
