package api

import (
	"net/http"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/models/dtos/responses"
	"ecofly/radar/internal/surface"
)

// ListClasses handles GET /api/v1/catalog/classes
func (h *Handlers) ListClasses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classes := catalog.Classes()
		resp := responses.CatalogResponse{Classes: make([]catalog.ClassInfo, 0, len(classes))}
		for _, c := range classes {
			resp.Classes = append(resp.Classes, c.Info())
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

// ListOperators handles GET /api/v1/catalog/operators
// Sorted by name, as the operator filter lists them.
func (h *Handlers) ListOperators() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := responses.CatalogResponse{Operators: h.deps.Catalog.Operators.ByName()}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

// ListAirports handles GET /api/v1/catalog/airports
func (h *Handlers) ListAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := responses.CatalogResponse{Airports: h.deps.Catalog.Airports.All()}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

type surfaceObjectsResponse struct {
	Counts  map[surface.Kind]int `json:"counts"`
	Objects []surface.Object     `json:"objects"`
}

// ListSurfaceObjects handles GET /api/v1/surface/objects?kind=marker|trail|line
func (h *Handlers) ListSurfaceObjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.deps.Surface == nil {
			respondWithError(w, http.StatusNotFound, "No inspectable surface configured")
			return
		}
		kind := surface.Kind(r.URL.Query().Get("kind"))
		switch kind {
		case "", surface.KindMarker, surface.KindTrail, surface.KindLine:
		default:
			respondWithError(w, http.StatusBadRequest, "Invalid kind parameter")
			return
		}
		resp := surfaceObjectsResponse{
			Counts:  h.deps.Surface.Counts(),
			Objects: h.deps.Surface.Objects(kind),
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
