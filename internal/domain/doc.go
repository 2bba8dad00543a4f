// Package domain defines the core types of the annals historical entry service.
//
// # Core Types
//
// Entry is the only persisted resource: a server-assigned integer id, a name,
// and an arbitrary JSON payload (details) that is stored and returned verbatim.
//
// EntryInput carries the mutable fields of an entry for create and update
// calls. Supplied ids are never part of an input; the store owns id assignment.
//
// # Errors
//
// Failures are classified with github.com/morikuni/failure codes:
//
//   - NotFound: no entry exists with the requested id
//   - ValidationError: an input is missing a required field or carries malformed JSON
//   - StorageError: the backing store failed
//
// The HTTP layer maps each code to a status; nothing below it knows about HTTP.
package domain
