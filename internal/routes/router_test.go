package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofly/radar/internal/analysis"
	"ecofly/radar/internal/api"
	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/engine"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/metrics"
	"ecofly/radar/internal/middleware"
	"ecofly/radar/internal/surface"
)

func newServer(t *testing.T) (http.Handler, *fleet.Store) {
	t.Helper()
	cat := catalog.Default()
	flights, err := fleet.NewGenerator(cat, 9).Generate(25)
	require.NoError(t, err)
	store, err := fleet.NewStore(flights)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsRegistry(reg)
	mem := surface.NewMemory()
	eng := engine.New(store, cat, mem, analysis.NewEstimator(0, nil, 1, nil), engine.Options{
		Interval: 20 * time.Millisecond,
		Metrics:  m,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = eng.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-eng.Done()
	})

	h := RegisterRoutes(&api.Dependencies{
		Engine:  eng,
		Catalog: cat,
		Surface: mem,
		UpSince: time.Now(),
	}, RouterOptions{
		Metrics:        m,
		Gatherer:       reg,
		AnalyzeLimiter: middleware.NewRateLimiter(0.001, 1),
	})
	return h, store
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEndToEndAnalysis(t *testing.T) {
	h, store := newServer(t)
	id := store.All()[0].ID

	rec := call(h, http.MethodPut, "/api/v1/selection", `{"flight_id":"`+id+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(h, http.MethodPost, "/api/v1/selection/analysis", `{}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	require.Eventually(t, func() bool {
		rec := call(h, http.MethodGet, "/api/v1/selection", "")
		var out struct {
			Data struct {
				Overlay  string          `json:"overlay"`
				Analysis json.RawMessage `json:"analysis"`
			} `json:"data"`
		}
		if json.Unmarshal(rec.Body.Bytes(), &out) != nil {
			return false
		}
		return out.Data.Overlay == "selected_with_analysis" && len(out.Data.Analysis) > 0
	}, 2*time.Second, 10*time.Millisecond)

	rec = call(h, http.MethodGet, "/api/v1/surface/objects?kind=line", "")
	assert.Contains(t, rec.Body.String(), `"line":2`)

	rec = call(h, http.MethodPost, "/api/v1/selection/analysis", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestMetricsAndHealth(t *testing.T) {
	h, _ := newServer(t)

	rec := call(h, http.MethodGet, "/healthCheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(h, http.MethodGet, "/api/v1/flights", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = call(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ecofly_http_requests_total")
	assert.Contains(t, body, "ecofly_flights_visible")
}
