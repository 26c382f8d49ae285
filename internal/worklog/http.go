package worklog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/wodomierze/rejestr/internal/http/middleware"
	"github.com/wodomierze/rejestr/internal/registry"
)

// Handler obsługuje trasy dziennika pracy i pulpitu.
type Handler struct {
	service *Service
}

// NewHandler tworzy handler dziennika pracy.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor := httpmiddleware.GetUser(ctx)
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "brak zalogowanego użytkownika", nil)
		return
	}

	var input CreateEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nieprawidłowy JSON", nil)
		return
	}

	entry, err := h.service.CreateEntry(ctx, actor.ID, input)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	log.Info().
		Int64("entry_id", entry.ID).
		Int64("request_id", entry.RequestID).
		Int64("inspector_id", actor.ID).
		Msg("wpis pracy zapisany")
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (h *Handler) handleRecentEntries(w http.ResponseWriter, r *http.Request) {
	var requestID *int64
	if raw := r.URL.Query().Get("request_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION", "nieprawidłowy identyfikator wniosku", nil)
			return
		}
		requestID = &id
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.service.RecentEntries(r.Context(), requestID, limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []RecentEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) handleRequestSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nieprawidłowy identyfikator", nil)
		return
	}

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, ErrBadReference):
		writeError(w, http.StatusBadRequest, "BAD_REFERENCE", err.Error(), nil)
	case errors.Is(err, registry.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "rekord nie znaleziony", nil)
	default:
		writeInternalError(w, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "error": nil})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("błąd operacji dziennika pracy")
	writeError(w, http.StatusInternalServerError, "INTERNAL", "błąd wewnętrzny", nil)
}
