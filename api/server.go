/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Wires URLs to handlers. chi for routing, the standard middleware stack,
  permissive CORS for local tooling.

ROUTE GROUPS:
  /healthz            liveness
  /api/report         report + save
  /api/scenarios      what-if runs
  /api/notifications  current events
  /api/sessions       session history

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/leaved:  server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/report", func(r chi.Router) {
			r.Get("/", h.GetReport)
			r.Post("/save", h.SaveReport)
		})
		r.Post("/scenarios", h.RunScenario)
		r.Get("/notifications", h.GetNotifications)
		r.Get("/sessions", h.ListSessions)
	})

	return r
}
