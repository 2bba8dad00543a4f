package handler

import (
	"net/http"
)

// RouterConfig holds the dependencies of the HTTP router
type RouterConfig struct {
	Service        EntryService
	Observer       RequestObserver
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// NewRouter registers every route and wraps the mux in the middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	entries := NewEntryHandler(cfg.Service)
	legacy := NewLegacyHandler(cfg.Service)
	health := NewHealthHandler(cfg.Service)

	mux := http.NewServeMux()

	// Entry endpoints
	mux.HandleFunc("GET /entries/{$}", entries.ListEntries)
	mux.HandleFunc("POST /entries/{$}", entries.CreateEntry)
	mux.HandleFunc("GET /entries/{id}/{$}", entries.GetEntry)
	mux.HandleFunc("PUT /entries/{id}/{$}", entries.UpdateEntry)
	mux.HandleFunc("DELETE /entries/{id}/{$}", entries.DeleteEntry)

	// Legacy endpoints
	mux.HandleFunc("GET /all/{$}", legacy.AllEntries)
	mux.HandleFunc("GET /entry/{id}/{$}", legacy.GetEntry)

	// Operations
	mux.HandleFunc("GET /healthz", health.Health)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	return Chain(mux,
		RequestID,
		AccessLog(cfg.Observer),
		Recover,
		CORS(cfg.AllowedOrigins),
	)
}
