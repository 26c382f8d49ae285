package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Recover gwarantuje bezpieczną odpowiedź w razie paniki handlera.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Msg("odzyskano panikę")
				writeError(w, http.StatusInternalServerError, "INTERNAL", "błąd wewnętrzny")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
