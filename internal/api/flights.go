package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ecofly/radar/internal/analysis"
	"ecofly/radar/internal/models/dtos/responses"
)

// ListFlights handles GET /api/v1/flights
// Returns the visible flights of the latest cycle. `limit` caps the list;
// `live` always reports the full visible count.
func (h *Handlers) ListFlights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := h.deps.Engine.Snapshot()

		limit := len(snap.Visible)
		if qs := r.URL.Query().Get("limit"); qs != "" {
			n, err := strconv.Atoi(qs)
			if err != nil || n < 0 {
				respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
				return
			}
			if n < limit {
				limit = n
			}
		}

		resp := responses.FlightsResponse{
			Tick:    snap.Tick,
			At:      snap.At,
			Live:    len(snap.Visible),
			Total:   snap.Total,
			Flights: make([]responses.FlightView, 0, limit),
		}
		for i := 0; i < limit; i++ {
			resp.Flights = append(resp.Flights, responses.NewFlightView(&snap.Visible[i], false))
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

// GetFlight handles GET /api/v1/flights/{id}
// Any flight in the fleet can be inspected, visible or not.
func (h *Handlers) GetFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		snap := h.deps.Engine.Snapshot()

		f, ok := snap.Find(id)
		if !ok {
			live, found, err := h.deps.Engine.Lookup(r.Context(), id)
			if err != nil {
				respondWithEngineError(w, err)
				return
			}
			if !found {
				respondWithError(w, http.StatusNotFound, "Flight not found")
				return
			}
			f = &live
		}

		resp := responses.FlightDetailResponse{
			Flight:    responses.NewFlightView(f, true),
			Emissions: analysis.EmittedSoFar(f),
			Selected:  snap.Selected != nil && snap.Selected.ID == f.ID,
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
