package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"annals/internal/domain"
)

// maxBodyBytes bounds request bodies for create and update
const maxBodyBytes = 2621440

// EntryService is the entry business logic used by the handlers
type EntryService interface {
	List(ctx context.Context) ([]domain.Entry, error)
	Get(ctx context.Context, id int64) (*domain.Entry, error)
	Create(ctx context.Context, in domain.EntryInput) (*domain.Entry, error)
	Update(ctx context.Context, id int64, in domain.EntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// entryRequest is the wire form of a create or update body.
// Any id in the body is ignored; the store assigns ids.
type entryRequest struct {
	Name    json.RawMessage `json:"name"`
	Details json.RawMessage `json:"details"`
}

// EntryHandler handles the /entries/ resource
type EntryHandler struct {
	svc EntryService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// ListEntries returns all entries
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, entries, http.StatusOK)
}

// CreateEntry creates a new entry
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	in, err := decodeEntryInput(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entry, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, entry, http.StatusCreated)
}

// GetEntry returns a single entry
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, domain.ErrEntryNotFound(0))
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, entry, http.StatusOK)
}

// UpdateEntry replaces an existing entry
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, domain.ErrEntryNotFound(0))
		return
	}

	in, err := decodeEntryInput(w, r)
	if err == nil {
		var entry *domain.Entry
		entry, err = h.svc.Update(r.Context(), id, in)
		if err == nil {
			writeJSON(w, r, entry, http.StatusOK)
			return
		}
	}

	// A missing entry wins over a bad body.
	if domain.IsValidation(err) {
		if _, getErr := h.svc.Get(r.Context(), id); domain.IsNotFound(getErr) {
			err = getErr
		}
	}
	writeServiceError(w, r, err)
}

// DeleteEntry deletes an entry
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, domain.ErrEntryNotFound(0))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

// pathID parses the {id} path segment. Anything that is not an integer
// cannot name an entry.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeEntryInput(w http.ResponseWriter, r *http.Request) (domain.EntryInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.EntryInput{}, domain.ErrInvalid("body", "failed to read body - "+err.Error())
	}
	// Unmarshal would silently replace invalid sequences inside strings.
	if !utf8.Valid(body) {
		return domain.EntryInput{}, domain.ErrInvalid("body", "JSON parse error - body is not valid UTF-8")
	}

	// The whole body must be exactly one JSON value.
	var req entryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return domain.EntryInput{}, domain.ErrInvalid("body", "JSON parse error - "+err.Error())
	}

	name, err := coerceName(req.Name)
	if err != nil {
		return domain.EntryInput{}, err
	}
	return domain.EntryInput{Name: name, Details: req.Details}, nil
}

// coerceName accepts a JSON string or number for the name field.
// Numbers keep their literal text.
func coerceName(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}

	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", domain.ErrInvalid("name", "Not a valid string.")
		}
		return s, nil
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", domain.ErrInvalid("name", "Not a valid string.")
		}
		return n.String(), nil
	case bytes.Equal(raw, []byte("null")):
		return "", domain.ErrInvalid("name", "This field may not be null.")
	}
	return "", domain.ErrInvalid("name", "Not a valid string.")
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsNotFound(err):
		writeError(w, r, domain.EntryNotFoundMessage, "", http.StatusNotFound)
	case domain.IsValidation(err):
		writeError(w, r, "Invalid request body", domain.MessageOf(err, err.Error()), http.StatusBadRequest)
	default:
		zerolog.Ctx(r.Context()).Error().Stack().Err(err).Msg("request failed")
		writeError(w, r, "Internal server error", "", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode JSON")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, msg, details string, statusCode int) {
	writeJSON(w, r, ErrorResponse{
		Error:   msg,
		Details: details,
	}, statusCode)
}
