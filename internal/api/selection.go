package api

import (
	"net/http"

	"ecofly/radar/internal/engine"
	"ecofly/radar/internal/models/dtos/requests"
	"ecofly/radar/internal/models/dtos/responses"
)

func selectionResponse(snap *engine.Snapshot) *responses.SelectionResponse {
	resp := &responses.SelectionResponse{
		Emissions: snap.Emissions,
		Analysis:  snap.Analysis,
		Analyzing: snap.Analyzing,
		Overlay:   snap.Overlay,
	}
	if snap.Selected != nil {
		v := responses.NewFlightView(snap.Selected, true)
		resp.Flight = &v
	}
	return resp
}

// GetSelection handles GET /api/v1/selection
func (h *Handlers) GetSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithSuccess(w, http.StatusOK, selectionResponse(h.deps.Engine.Snapshot()))
	}
}

// SetSelection handles PUT /api/v1/selection
// Unknown ids clear the selection rather than failing.
func (h *Handlers) SetSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.SelectFlightRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		id := ""
		if req.FlightID != nil {
			id = *req.FlightID
		}
		if err := h.deps.Engine.SelectFlight(r.Context(), id); err != nil {
			respondWithEngineError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, selectionResponse(h.deps.Engine.Snapshot()))
	}
}

// ClearSelection handles DELETE /api/v1/selection
func (h *Handlers) ClearSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.deps.Engine.SelectFlight(r.Context(), ""); err != nil {
			respondWithEngineError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, selectionResponse(h.deps.Engine.Snapshot()))
	}
}

// RequestAnalysis handles POST /api/v1/selection/analysis
// The analysis runs in the background; poll GET /selection for the result.
// Without a flight_id the current selection is analyzed.
func (h *Handlers) RequestAnalysis() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requests.AnalyzeRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		id := req.FlightID
		if id == "" {
			if sel := h.deps.Engine.Snapshot().Selected; sel != nil {
				id = sel.ID
			}
		}
		if err := h.deps.Engine.RequestAnalyze(r.Context(), id); err != nil {
			respondWithEngineError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusAccepted, selectionResponse(h.deps.Engine.Snapshot()))
	}
}
