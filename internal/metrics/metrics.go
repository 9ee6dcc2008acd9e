package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the radar service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Simulation Metrics
	TicksTotal        prometheus.Counter
	TicksSkippedTotal prometheus.Counter
	TickDuration      prometheus.Histogram
	FlightsTotal      prometheus.Gauge
	FlightsVisible    prometheus.Gauge

	// Render Metrics
	RenderOpsTotal       *prometheus.CounterVec
	ReconcileDuration    prometheus.Histogram
	SurfaceFlushFailures prometheus.Counter

	// Analysis Metrics
	AnalysisRequestsTotal *prometheus.CounterVec
	AnalysisDuration      prometheus.Histogram
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	f := promauto.With(reg)
	return &MetricsRegistry{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecofly_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecofly_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ecofly_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		TicksTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "ecofly_ticks_total",
			Help: "Simulation ticks applied",
		}),
		TicksSkippedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "ecofly_ticks_skipped_total",
			Help: "Ticks coalesced because the previous cycle overran the interval",
		}),
		TickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecofly_tick_duration_seconds",
			Help:    "Time spent advancing every flight in one tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		FlightsTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "ecofly_flights_total",
			Help: "Flights in the entity store",
		}),
		FlightsVisible: f.NewGauge(prometheus.GaugeOpts{
			Name: "ecofly_flights_visible",
			Help: "Flights passing the current filters and search",
		}),

		RenderOpsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecofly_render_ops_total",
				Help: "Render reconciliation outcomes by kind",
			},
			[]string{"outcome"},
		),
		ReconcileDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecofly_reconcile_duration_seconds",
			Help:    "Time spent reconciling the render surface",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		SurfaceFlushFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "ecofly_surface_flush_failures_total",
			Help: "Batched surface flushes that failed",
		}),

		AnalysisRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecofly_analysis_requests_total",
				Help: "Analysis requests by result (completed, stale, cancelled, failed)",
			},
			[]string{"result"},
		),
		AnalysisDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecofly_analysis_duration_seconds",
			Help:    "Latency of completed analyses",
			Buckets: []float64{0.1, 0.5, 1, 1.5, 2, 5, 10},
		}),
	}
}
