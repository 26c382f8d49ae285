package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/wodomierze/rejestr/internal/http/middleware"
)

// Handler obsługuje trasy administracji rejestrem.
type Handler struct {
	service *Service
}

// NewHandler tworzy handler rejestru.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nieprawidłowy JSON", nil)
		return
	}

	request, err := h.service.CreateRequest(ctx, input)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if actor := httpmiddleware.GetUser(ctx); actor != nil {
		log.Info().Int64("request_id", request.ID).Int64("actor_id", actor.ID).Msg("wniosek utworzony")
	}
	writeJSON(w, http.StatusCreated, map[string]any{"request": request})
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListRequests(r.Context(), queryLimit(r, 50))
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nieprawidłowy identyfikator", nil)
		return
	}

	request, err := h.service.GetRequest(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"request":   request,
		"breakdown": request.Breakdown(),
	})
}

func (h *Handler) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nieprawidłowy identyfikator", nil)
		return
	}

	confirmed := strings.EqualFold(r.URL.Query().Get("confirm"), "true")

	if err := h.service.DeleteRequest(ctx, id, confirmed); err != nil {
		handleDomainError(w, err)
		return
	}

	if actor := httpmiddleware.GetUser(ctx); actor != nil {
		log.Info().Int64("request_id", id).Int64("actor_id", actor.ID).Msg("wniosek usunięty")
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (h *Handler) handleCreateWorkDay(w http.ResponseWriter, r *http.Request) {
	var input CreateWorkDayInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nieprawidłowy JSON", nil)
		return
	}

	day, err := h.service.CreateWorkDay(r.Context(), input)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"work_day": day})
}

func (h *Handler) handleListWorkDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.ListWorkDays(r.Context(), queryLimit(r, 50))
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"work_days": days})
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrConfirmRequired):
		writeError(w, http.StatusBadRequest, "CONFIRM_REQUIRED", err.Error(), nil)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrBadID):
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, ErrHasEntries):
		writeError(w, http.StatusConflict, "HAS_ENTRIES", err.Error(), nil)
	case errors.Is(err, ErrDuplicateDate):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "rekord nie znaleziony", nil)
	default:
		writeInternalError(w, err)
	}
}

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
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
	log.Error().Err(err).Msg("błąd operacji rejestru")
	writeError(w, http.StatusInternalServerError, "INTERNAL", "błąd wewnętrzny", nil)
}
