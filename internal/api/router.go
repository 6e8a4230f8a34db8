package api

import (
	"dropoff-route-planner/internal/api/handlers"
	"dropoff-route-planner/internal/platform/metrics"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(plans *handlers.PlanHandler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", plans.Create)
		r.Route("/{planID}", func(r chi.Router) {
			r.Get("/", plans.Get)
			r.Delete("/", plans.Delete)
			r.Post("/document", plans.Document)
		})
	})

	return r
}
