package routes

import (
	"github.com/go-chi/chi/v5"

	"ecofly/radar/internal/api"
	"ecofly/radar/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, analyzeLimiter *middleware.RateLimiter) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/flights", handlers.ListFlights())
		v1.Get("/flights/{id}", handlers.GetFlight())

		v1.Get("/selection", handlers.GetSelection())
		v1.Put("/selection", handlers.SetSelection())
		v1.Delete("/selection", handlers.ClearSelection())
		v1.Group(func(limited chi.Router) {
			if analyzeLimiter != nil {
				limited.Use(analyzeLimiter.Middleware)
			}
			limited.Post("/selection/analysis", handlers.RequestAnalysis())
		})

		v1.Get("/filters", handlers.GetFilters())
		v1.Put("/filters", handlers.SetFilters())
		v1.Delete("/filters", handlers.ResetFilters())
		v1.Put("/search", handlers.SetSearch())

		v1.Route("/catalog", func(c chi.Router) {
			c.Get("/classes", handlers.ListClasses())
			c.Get("/operators", handlers.ListOperators())
			c.Get("/airports", handlers.ListAirports())
		})

		v1.Get("/surface/objects", handlers.ListSurfaceObjects())
	})
}
