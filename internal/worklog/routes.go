package worklog

import (
	"github.com/go-chi/chi/v5"
)

// Mount rejestruje trasy dziennika pracy. Wpisy dodaje każdy zalogowany
// użytkownik; widoki odczytu są wspólne.
func Mount(r chi.Router, handler *Handler) {
	r.Post("/entries", handler.handleCreateEntry)
	r.Get("/entries/recent", handler.handleRecentEntries)
	r.Get("/dashboard", handler.handleDashboard)
	r.Get("/requests/{id}/summary", handler.handleRequestSummary)
}
