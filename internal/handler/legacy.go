package handler

import (
	"encoding/json"
	"net/http"

	"annals/internal/domain"
)

// LegacyHandler serves the older /all/ and /entry/{id}/ routes.
// Their response bodies must not change with the primary API.
type LegacyHandler struct {
	svc EntryService
}

// NewLegacyHandler creates a new legacy handler
func NewLegacyHandler(svc EntryService) *LegacyHandler {
	return &LegacyHandler{svc: svc}
}

// AllEntries returns every entry as a JSON array
func (h *LegacyHandler) AllEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, entries, http.StatusOK)
}

// GetEntry returns one entry as {id, name, details}
func (h *LegacyHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, domain.EntryNotFoundMessage, "", http.StatusNotFound)
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, legacyEntry{
		ID:      entry.ID,
		Name:    entry.Name,
		Details: entry.Details,
	}, http.StatusOK)
}

// legacyEntry pins the field set of /entry/{id}/ responses
type legacyEntry struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Details json.RawMessage `json:"details"`
}
