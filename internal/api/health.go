package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ecofly/radar/internal/models/dtos/responses"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheckHandler handles GET /healthCheck
// Reports the engine tick and the state of each configured backing service.
func (h *Handlers) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]responses.ServiceStatus, len(h.deps.HealthChecks))
		overallStatus := "ok"

		for name, check := range h.deps.HealthChecks {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			err := check(ctx)
			cancel()

			status := responses.ServiceStatus{Status: "ok", Details: "connected"}
			if err != nil {
				status = responses.ServiceStatus{Status: "down", Details: err.Error()}
				overallStatus = "down"
			}
			services[name] = status
		}

		snap := h.deps.Engine.Snapshot()
		resp := responses.HealthCheckResponse{
			Status:   overallStatus,
			Services: services,
			UpSince:  h.deps.UpSince,
			Uptime:   time.Since(h.deps.UpSince).Round(time.Second).String(),
			Tick:     snap.Tick,
			Flights:  snap.Total,
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
