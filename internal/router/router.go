package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/userauth-dev/userauth/internal/middleware"
	"github.com/userauth-dev/userauth/internal/middleware/metrics"
	"github.com/userauth-dev/userauth/internal/setup"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(metrics.Middleware)

	if origin := deps.Config.Public.AllowedOrigin; origin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{origin},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	h := deps.Handler

	// Probes and metrics
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Account lifecycle
	r.Post("/register/", h.Register)
	r.Get("/login/", h.LoginPage)
	r.Post("/login/", h.Login)
	r.Post("/logout/", h.Logout)
	r.Get("/confirm/{token}", h.ConfirmEmail)

	// Session-gated pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectToLogin(deps.AuthMiddleware.NeedAuth()))
		r.Get("/", h.Home)
	})

	return r
}
