// Package server assembles the HTTP surface: router, middleware stack
// and lifecycle.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donelist/donelist/internal/server/auth"
	"github.com/donelist/donelist/internal/server/config"
	"github.com/donelist/donelist/internal/server/handlers"
	"github.com/donelist/donelist/internal/server/mail"
	"github.com/donelist/donelist/internal/server/middleware"
	"github.com/donelist/donelist/internal/server/storage"
)

// Stores groups the persistence interfaces the router needs.
type Stores struct {
	Users storage.UserStorage
	Todos storage.TodoStorage
}

// NewRouter builds the complete route tree with its middleware stack.
func NewRouter(logger *slog.Logger, cfg config.Config, stores Stores, mailer mail.Mailer, version string) http.Handler {
	jwtConfig := auth.Config{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: cfg.AccessTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, stores.Users, mailer, jwtConfig, cfg.ResetTokenTTL, cfg.FrontendURL)
	todoHandler := handlers.NewTodoHandler(logger, stores.Todos)
	userHandler := handlers.NewUserHandler(logger, stores.Users)
	healthHandler := handlers.NewHealthHandler(logger, version)

	guard := middleware.Authenticate(logger, stores.Users, jwtConfig)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())

	r.Get("/healthz", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public endpoints are the brute-force surface; cap them.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow, logger))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/forgot-password", authHandler.ForgotPassword)
				r.Put("/reset-password/{resettoken}", authHandler.ResetPassword)
			})
			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Get("/me", authHandler.Me)
				r.Put("/change-password", authHandler.ChangePassword)
			})
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(guard)
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Get("/stats/summary", todoHandler.Stats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", todoHandler.Get)
				r.Put("/", todoHandler.Update)
				r.Delete("/", todoHandler.Delete)
				r.Patch("/toggle", todoHandler.Toggle)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(guard)
			r.Get("/profile", userHandler.Profile)
			r.Put("/profile", userHandler.UpdateProfile)
			r.Delete("/profile", userHandler.DeleteProfile)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
