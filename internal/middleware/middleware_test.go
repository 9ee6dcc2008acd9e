package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"ecofly/radar/internal/metrics"
)

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, "10.0.0.9")
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:5000"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:5002"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2:5000"), "buckets are per client")
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, do("10.0.0.9:1"))
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware, MetricsMiddleware(reg))
	r.Get("/flights/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flights/3E8", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.HTTPRequestsTotal.WithLabelValues("/flights/{id}", "GET", "404")))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", RequestIDFromContext(r.Context()))
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

func TestRespLoggerKeepsOnlyErrorBodies(t *testing.T) {
	ok := &respLogger{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	_, _ = ok.Write([]byte(`{"status":true}`))
	assert.Zero(t, ok.buf.Len())

	failed := &respLogger{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	failed.WriteHeader(http.StatusBadRequest)
	_, _ = failed.Write(bytes.Repeat([]byte("x"), maxLoggedBody+100))
	assert.Equal(t, maxLoggedBody, failed.buf.Len())
}

func TestErrorLoggingPassesResponseThrough(t *testing.T) {
	h := ErrorLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/selection/analysis", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "slow down", rec.Body.String())
}
