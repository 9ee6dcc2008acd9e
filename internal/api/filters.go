package api

import (
	"net/http"

	"ecofly/radar/internal/engine"
	"ecofly/radar/internal/models/dtos/requests"
	"ecofly/radar/internal/models/dtos/responses"
	"ecofly/radar/internal/view"
)

func filtersResponse(snap *engine.Snapshot) *responses.FiltersResponse {
	return &responses.FiltersResponse{
		Criteria: snap.Criteria,
		Search:   snap.Search,
		Live:     len(snap.Visible),
	}
}

// GetFilters handles GET /api/v1/filters
func (h *Handlers) GetFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithSuccess(w, http.StatusOK, filtersResponse(h.deps.Engine.Snapshot()))
	}
}

// SetFilters handles PUT /api/v1/filters
// Out-of-domain criteria are ignored; the response shows what is in effect.
func (h *Handlers) SetFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.FiltersRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		c := view.Criteria{
			Class:         req.Class,
			Operator:      req.Operator,
			MinAltitudeFt: req.MinAltitudeFt,
			MinSpeedKt:    req.MinSpeedKt,
		}
		if err := h.deps.Engine.SetFilters(r.Context(), c); err != nil {
			respondWithEngineError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, filtersResponse(h.deps.Engine.Snapshot()))
	}
}

// ResetFilters handles DELETE /api/v1/filters
func (h *Handlers) ResetFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.deps.Engine.ResetFilters(r.Context()); err != nil {
			respondWithEngineError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, filtersResponse(h.deps.Engine.Snapshot()))
	}
}

// SetSearch handles PUT /api/v1/search
func (h *Handlers) SetSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.SearchRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := h.deps.Engine.SetSearchText(r.Context(), req.Text); err != nil {
			respondWithEngineError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, filtersResponse(h.deps.Engine.Snapshot()))
	}
}
