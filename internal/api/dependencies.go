package api

import (
	"context"
	"time"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/engine"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/surface"
	"ecofly/radar/internal/view"
)

// Engine is the slice of *engine.Engine the handlers use.
type Engine interface {
	Snapshot() *engine.Snapshot
	Lookup(ctx context.Context, id string) (fleet.Flight, bool, error)
	SelectFlight(ctx context.Context, id string) error
	SetFilters(ctx context.Context, c view.Criteria) error
	ResetFilters(ctx context.Context) error
	SetSearchText(ctx context.Context, text string) error
	RequestAnalyze(ctx context.Context, id string) error
}

// ObjectSource exposes the render objects of an in-memory surface.
type ObjectSource interface {
	Objects(kind surface.Kind) []surface.Object
	Counts() map[surface.Kind]int
}

// HealthCheck probes one backing service.
type HealthCheck func(ctx context.Context) error

type Dependencies struct {
	Engine       Engine
	Catalog      *catalog.Catalog
	Surface      ObjectSource
	HealthChecks map[string]HealthCheck
	UpSince      time.Time
}

type Handlers struct {
	deps *Dependencies
}

func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{deps: deps}
}
