// Package handler implements HTTP request handlers for the annals API.
//
// # Handlers
//
// EntryHandler serves the primary REST resource under /entries/.
//
// LegacyHandler serves the two older routes, /all/ and /entry/{id}/, whose
// response contract is kept separately from the primary routes.
//
// HealthHandler reports liveness together with store reachability.
//
// Middleware provides request ids, access logging, metrics, panic recovery
// and CORS.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation
// - PUT for full replacement
// - DELETE for removal
//
// # Response Format
//
// Success responses return JSON with 200 or 201; deletes return 204 with no
// body. Error responses return JSON with an {error, details} structure where
// details is only present for validation failures. A missing entry is always
// {"error": "Entry not found"} with status 404.
package handler
