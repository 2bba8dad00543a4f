package domain

import (
	"strconv"

	"github.com/morikuni/failure"
)

// Error codes shared by the store, service and HTTP layers.
const (
	NotFound        failure.StringCode = "NotFound"
	ValidationError failure.StringCode = "ValidationError"
	StorageError    failure.StringCode = "StorageError"
)

// EntryNotFoundMessage is the user-facing message for a missing entry.
const EntryNotFoundMessage = "Entry not found"

// ErrEntryNotFound returns a NotFound error for the given id
func ErrEntryNotFound(id int64) error {
	return failure.New(NotFound,
		failure.Context{"id": strconv.FormatInt(id, 10)},
		failure.Message(EntryNotFoundMessage),
	)
}

// ErrInvalid returns a ValidationError describing the offending field
func ErrInvalid(field, reason string) error {
	return failure.New(ValidationError,
		failure.Context{"field": field},
		failure.Message(field+": "+reason),
	)
}

// WrapStorage marks err as an unexpected storage failure. A nil err stays nil.
func WrapStorage(err error, op string) error {
	if err == nil {
		return nil
	}
	return failure.MarkUnexpected(
		failure.Translate(err, StorageError, failure.Context{"op": op}),
	)
}

// IsNotFound reports whether err carries the NotFound code
func IsNotFound(err error) bool {
	return failure.Is(err, NotFound)
}

// IsValidation reports whether err carries the ValidationError code
func IsValidation(err error) bool {
	return failure.Is(err, ValidationError)
}

// MessageOf returns the user-facing message attached to err, or fallback
func MessageOf(err error, fallback string) string {
	if msg, ok := failure.MessageOf(err); ok && msg != "" {
		return msg
	}
	return fallback
}
