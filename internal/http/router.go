package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wodomierze/rejestr/internal/auth"
	"github.com/wodomierze/rejestr/internal/config"
	httpmiddleware "github.com/wodomierze/rejestr/internal/http/middleware"
	"github.com/wodomierze/rejestr/internal/registry"
	"github.com/wodomierze/rejestr/internal/worklog"
)

// Deps to zależności routera składane w cmd/api.
type Deps struct {
	Config      *config.Config
	Verifier    *auth.TokenVerifier
	Provisioner httpmiddleware.UserProvisioner
	Registry    *registry.Handler
	Worklog     *worklog.Handler
}

// NewRouter składa pełny router aplikacji: middleware bazowe, healthcheck
// i uwierzytelnione API pod /v1.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(deps.Config.AllowOrigins))

	publicLimiter := httpmiddleware.NewRateLimiter(
		deps.Config.RateLimitPublic.RequestsPerSecond,
		deps.Config.RateLimitPublic.Burst,
	)
	authLimiter := httpmiddleware.NewRateLimiter(
		deps.Config.RateLimitAuth.RequestsPerSecond,
		deps.Config.RateLimitAuth.Burst,
	)

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.IPRateLimit(publicLimiter))
		r.Get("/healthz", handleHealthz)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(httpmiddleware.Auth(deps.Verifier))
		r.Use(httpmiddleware.UserRateLimit(authLimiter))
		r.Use(httpmiddleware.Provision(deps.Provisioner))

		r.Get("/me", handleMe)

		registry.Mount(r, deps.Registry, httpmiddleware.RequireAdmin)
		worklog.Mount(r, deps.Worklog)
	})

	return r
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleMe zwraca zalogowanego użytkownika wraz z trwałą rolą.
func handleMe(w http.ResponseWriter, r *http.Request) {
	user := httpmiddleware.GetUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "brak uwierzytelnienia", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}
