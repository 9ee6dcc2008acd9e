package fleet

import (
	"errors"
	"fmt"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/geo"
)

// HistoryCap bounds the number of past positions kept per flight.
const HistoryCap = 25

// MachDivisor converts ground speed in knots to an approximate Mach number.
const MachDivisor = 661.0

var (
	ErrDuplicateID   = errors.New("duplicate flight id")
	ErrSameEndpoints = errors.New("origin equals destination")
	ErrMissingField  = errors.New("missing required field")
)

// Flight is the unit of simulation. Kinematic fields (Position, Heading,
// History) are written only by the tick engine.
type Flight struct {
	ID               string            `json:"id"`
	Callsign         string            `json:"callsign"`
	Class            catalog.Class     `json:"class"`
	Operator         *catalog.Operator `json:"operator"`
	Model            string            `json:"model"`
	Position         geo.LatLng        `json:"position"`
	Heading          float64           `json:"heading"`
	AltitudeFt       float64           `json:"altitude_ft"`
	SpeedKt          float64           `json:"speed_kt"`
	VerticalSpeedFpm float64           `json:"vertical_speed_fpm"`
	Squawk           string            `json:"squawk"`
	Origin           *catalog.Airport  `json:"origin"`
	Destination      *catalog.Airport  `json:"destination"`
	Registration     string            `json:"registration"`
	CO2Factor        float64           `json:"co2_factor"`
	History          []geo.LatLng      `json:"history"`
}

func (f *Flight) Mach() float64 {
	return f.SpeedKt / MachDivisor
}

// OperatorCode returns the operator code or "" when the flight has no operator.
func (f *Flight) OperatorCode() string {
	if f.Operator == nil {
		return ""
	}
	return f.Operator.Code
}

// AppendHistory records p as the newest trail point, evicting the oldest
// entries once the trail exceeds HistoryCap.
func (f *Flight) AppendHistory(p geo.LatLng) {
	f.History = append(f.History, p)
	if over := len(f.History) - HistoryCap; over > 0 {
		// shift in place so the backing array does not grow without bound
		n := copy(f.History, f.History[over:])
		f.History = f.History[:n]
	}
}

// Validate checks the per-flight invariants.
func (f *Flight) Validate() error {
	switch {
	case f.ID == "":
		return fmt.Errorf("%w: id", ErrMissingField)
	case f.Operator == nil:
		return fmt.Errorf("%w: operator for %s", ErrMissingField, f.ID)
	case f.Origin == nil || f.Destination == nil:
		return fmt.Errorf("%w: airports for %s", ErrMissingField, f.ID)
	case f.Origin.IATA == f.Destination.IATA:
		return fmt.Errorf("%w: %s (%s)", ErrSameEndpoints, f.ID, f.Origin.IATA)
	case !f.Class.Valid():
		return fmt.Errorf("flight %s has invalid class %d", f.ID, f.Class)
	case len(f.History) > HistoryCap:
		return fmt.Errorf("flight %s history %d exceeds cap", f.ID, len(f.History))
	}
	return nil
}
