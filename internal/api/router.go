// Package api exposes the task list and the focus timer over HTTP.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/focus/internal/app"
)

// NewRouter creates the Chi router with all routes and middleware. db may be
// nil when the storage backend has nothing to ping.
func NewRouter(a *app.App, loop *app.Loop, db Pinger, apiKey string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS())
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(loop, db)
	taskH := NewTaskHandler(a, loop)
	sessionH := NewSessionHandler(a, loop)

	r.Get("/health", healthH.Health)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskH.List)
			r.Post("/", taskH.Create)
			r.Post("/{id}/toggle", taskH.Toggle)
			r.Delete("/{id}", taskH.Delete)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionH.Get)
			r.Post("/start", sessionH.Start)
			r.Post("/pause", sessionH.Pause)
			r.Post("/resume", sessionH.Resume)
			r.Post("/toggle", sessionH.Toggle)
			r.Post("/stop", sessionH.Stop)
		})

		r.Get("/stats", sessionH.Stats)
	})

	return r
}
