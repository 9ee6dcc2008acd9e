package render

import (
	"context"

	"ecofly/radar/internal/geo"
)

// Handle is an opaque reference to an object held by a Surface.
type Handle string

// Style describes how a trail or line is drawn.
type Style struct {
	Color       string  `json:"color" msgpack:"color"`
	Weight      int     `json:"weight" msgpack:"weight"`
	Opacity     float64 `json:"opacity" msgpack:"opacity"`
	DashArray   string  `json:"dash_array,omitempty" msgpack:"dash_array,omitempty"`
	Canvas      bool    `json:"canvas,omitempty" msgpack:"canvas,omitempty"`
	Interactive bool    `json:"interactive" msgpack:"interactive"`
}

// Surface is the external, stateful map the engine keeps in sync. Calls are
// synchronous; an error means the surface rejected that single operation.
// Implementations must copy any point slice they retain.
type Surface interface {
	CreateMarker(pos geo.LatLng, icon Icon) (Handle, error)
	UpdateMarkerPosition(h Handle, pos geo.LatLng) error
	UpdateMarkerIcon(h Handle, icon Icon) error
	RemoveMarker(h Handle) error

	CreateTrail(points []geo.LatLng, style Style) (Handle, error)
	UpdateTrail(h Handle, points []geo.LatLng) error
	RemoveTrail(h Handle) error

	CreateLine(points []geo.LatLng, style Style) (Handle, error)
	UpdateLine(h Handle, points []geo.LatLng) error
	RemoveLine(h Handle) error
}

// Flusher is implemented by surfaces that batch operations. The engine
// flushes once after every reconciliation cycle.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Trail and overlay styles.
var (
	RouteStyle = Style{Color: "#f59e0b", Weight: 2, Opacity: 1, DashArray: "5, 10", Interactive: true}
	EcoStyle   = Style{Color: "#10b981", Weight: 3, Opacity: 0.8, Interactive: true}
)

// TrailStyle is the faded per-flight history style.
func TrailStyle(color string) Style {
	return Style{Color: color, Weight: 2, Opacity: 0.3, Canvas: true}
}
