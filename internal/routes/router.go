package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecofly/radar/internal/api"
	"ecofly/radar/internal/logging"
	"ecofly/radar/internal/metrics"
	"ecofly/radar/internal/middleware"
)

// RouterOptions carries what the router needs beyond the handler dependencies.
type RouterOptions struct {
	Metrics        *metrics.MetricsRegistry
	Gatherer       prometheus.Gatherer
	CORSOrigins    []string
	AnalyzeLimiter *middleware.RateLimiter
}

func RegisterRoutes(deps *api.Dependencies, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.ErrorLogging)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	handlers := api.NewHandlers(deps)

	r.Get("/healthCheck", handlers.HealthCheckHandler())
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	RegisterAPIRoutes(r, handlers, opts.AnalyzeLimiter)

	logging.Info("Router initialized", "cors_origins", origins)
	return r
}
