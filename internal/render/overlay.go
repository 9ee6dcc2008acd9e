package render

import (
	"hash/fnv"
	"strconv"

	"go.uber.org/zap"

	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/geo"
)

// OverlayState is the selection slot state.
type OverlayState int

const (
	StateNone OverlayState = iota
	StateSelected
	StateSelectedWithAnalysis
)

func (s OverlayState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateSelected:
		return "selected"
	case StateSelectedWithAnalysis:
		return "selected_with_analysis"
	}
	return "unknown"
}

// MarshalText lets the state appear by name in JSON snapshots.
func (s OverlayState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ecoOffsetStep is the degrees of midpoint shift per unit of perturbation.
const ecoOffsetStep = 0.5

// OverlayManager owns the route line and eco-route line of the single
// selected flight. At most one of each exists at any time.
type OverlayManager struct {
	surface    Surface
	selectedID string
	route      Handle
	eco        Handle
	log        *zap.SugaredLogger
}

func NewOverlayManager(surface Surface, log *zap.SugaredLogger) *OverlayManager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &OverlayManager{surface: surface, log: log}
}

// Sync drives the overlay to the state implied by the selected flight (nil
// for none) and whether an analysis result exists for it.
func (m *OverlayManager) Sync(selected *fleet.Flight, analyzed bool) OverlayState {
	if selected == nil {
		m.Clear()
		return m.State()
	}

	if selected.ID != m.selectedID {
		// a new selection never inherits the previous eco-route
		m.removeEco()
		m.selectedID = selected.ID
	}

	m.syncRoute(selected)
	if analyzed {
		m.syncEco(selected)
	} else {
		m.removeEco()
	}
	return m.State()
}

// Clear removes both lines and empties the selection slot.
func (m *OverlayManager) Clear() {
	m.removeEco()
	if m.route != "" {
		if err := m.surface.RemoveLine(m.route); err != nil {
			m.log.Warnw("remove route line failed", "flight_id", m.selectedID, "op", "remove_line", "error", err)
		} else {
			m.route = ""
		}
	}
	if m.route == "" {
		m.selectedID = ""
	}
}

func (m *OverlayManager) syncRoute(f *fleet.Flight) {
	path := RoutePath(f)
	if m.route == "" {
		h, err := m.surface.CreateLine(path, RouteStyle)
		if err != nil {
			m.log.Warnw("create route line failed", "flight_id", f.ID, "op", "create_line", "error", err)
			return
		}
		m.route = h
		return
	}
	if err := m.surface.UpdateLine(m.route, path); err != nil {
		m.log.Warnw("update route line failed", "flight_id", f.ID, "op", "update_line", "error", err)
	}
}

// syncEco creates the eco-route once; its geometry depends only on the
// flight's endpoints and id, so it never needs refreshing.
func (m *OverlayManager) syncEco(f *fleet.Flight) {
	if m.eco != "" {
		return
	}
	h, err := m.surface.CreateLine(EcoPath(f), EcoStyle)
	if err != nil {
		m.log.Warnw("create eco line failed", "flight_id", f.ID, "op", "create_line", "error", err)
		return
	}
	m.eco = h
}

func (m *OverlayManager) removeEco() {
	if m.eco == "" {
		return
	}
	if err := m.surface.RemoveLine(m.eco); err != nil {
		m.log.Warnw("remove eco line failed", "flight_id", m.selectedID, "op", "remove_line", "error", err)
		return
	}
	m.eco = ""
}

// State reports the current slot state from the lines that exist.
func (m *OverlayManager) State() OverlayState {
	switch {
	case m.selectedID == "":
		return StateNone
	case m.eco != "":
		return StateSelectedWithAnalysis
	default:
		return StateSelected
	}
}

func (m *OverlayManager) SelectedID() string {
	return m.selectedID
}

// Lines returns the current route and eco handles; empty when absent.
func (m *OverlayManager) Lines() (route, eco Handle) {
	return m.route, m.eco
}

// RoutePath runs origin -> current position -> destination.
func RoutePath(f *fleet.Flight) []geo.LatLng {
	return []geo.LatLng{f.Origin.Position(), f.Position, f.Destination.Position()}
}

// EcoPath bends the origin-destination midpoint by a perturbation derived
// from the flight id, so the same flight always gets the same curve.
func EcoPath(f *fleet.Flight) []geo.LatLng {
	offset := float64(EcoOffset(f.ID)) * ecoOffsetStep
	mid := geo.Midpoint(f.Origin.Position(), f.Destination.Position())
	mid.Lat += offset
	mid.Lng += offset
	return []geo.LatLng{f.Origin.Position(), mid, f.Destination.Position()}
}

// EcoOffset maps an id to an integer in [-5, 4]. Hex ids use their numeric
// value; anything else is hashed.
func EcoOffset(id string) int {
	n, err := strconv.ParseUint(id, 16, 64)
	if err != nil {
		h := fnv.New64a()
		_, _ = h.Write([]byte(id))
		n = h.Sum64()
	}
	return int(n%10) - 5
}
