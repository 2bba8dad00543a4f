// Package service implements business logic for the annals entry service.
//
// EntryService sits between the HTTP handlers (and the CLI) and the
// repository. It normalizes and validates inputs, reports every store
// operation to an optional Observer, and publishes change events on an
// EventBus once a write has succeeded.
//
// # Event System
//
// EventBus delivers events synchronously to subscribers registered at
// startup. Subscribers must not block; they are used for metrics and the
// audit log.
package service
