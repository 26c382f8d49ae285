package registry

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount rejestruje trasy rejestru; operacje zapisu przechodzą przez
// przekazany middleware wymagający roli ADMIN.
func Mount(r chi.Router, handler *Handler, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/requests", handler.handleListRequests)
	r.Get("/requests/{id}", handler.handleGetRequest)
	r.Get("/work-days", handler.handleListWorkDays)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/requests", handler.handleCreateRequest)
		r.Delete("/requests/{id}", handler.handleDeleteRequest)
		r.Post("/work-days", handler.handleCreateWorkDay)
	})
}
