package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wodomierze/rejestr/internal/auth"
	"github.com/wodomierze/rejestr/internal/provision"
	"github.com/wodomierze/rejestr/internal/repo"
)

type contextKey string

const (
	ContextKeySubject contextKey = "subject"
	ContextKeyEmail   contextKey = "email"
	ContextKeyUser    contextKey = "user"
)

// Auth waliduje token dostawcy tożsamości i wstrzykuje subject do kontekstu.
func Auth(verifier *auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "AUTH", "brak tokenu")
				return
			}

			claims, err := verifier.ParseAndValidate(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "token nieprawidłowy")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject odczytuje subject z kontekstu.
func GetSubject(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySubject).(string)
	return val
}

// UserProvisioner rozwiązuje subject na lokalnego użytkownika.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, subject string) (*repo.User, error)
}

// Provision gwarantuje, że każde uwierzytelnione żądanie ma rekord
// użytkownika w bazie, zanim dotrze do handlera.
func Provision(provisioner UserProvisioner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := provisioner.EnsureUser(r.Context(), GetSubject(r.Context()))
			if err != nil {
				if errors.Is(err, provision.ErrNotAuthenticated) {
					writeError(w, http.StatusUnauthorized, "AUTH", "brak uwierzytelnienia")
					return
				}
				writeError(w, http.StatusInternalServerError, "INTERNAL", "błąd wewnętrzny")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser odczytuje użytkownika z kontekstu.
func GetUser(ctx context.Context) *repo.User {
	val, _ := ctx.Value(ContextKeyUser).(*repo.User)
	return val
}

// RequireAdmin dopuszcza wyłącznie użytkowników z trwałą rolą ADMIN.
// Rola z kolumny w bazie jest jedynym źródłem uprawnień.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "AUTH", "brak uwierzytelnienia")
			return
		}
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "operacja wymaga roli ADMIN")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
