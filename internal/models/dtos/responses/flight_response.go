package responses

import (
	"time"

	"ecofly/radar/internal/analysis"
	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/geo"
	"ecofly/radar/internal/render"
	"ecofly/radar/internal/view"
)

// FlightView is the list/detail presentation of one flight.
type FlightView struct {
	ID               string       `json:"id"`
	Callsign         string       `json:"callsign"`
	Class            string       `json:"class"`
	ClassLabel       string       `json:"class_label"`
	Operator         string       `json:"operator"`
	OperatorName     string       `json:"operator_name"`
	Color            string       `json:"color"`
	Model            string       `json:"model"`
	Position         geo.LatLng   `json:"position"`
	Heading          float64      `json:"heading"`
	AltitudeFt       float64      `json:"altitude_ft"`
	SpeedKt          float64      `json:"speed_kt"`
	Mach             float64      `json:"mach"`
	VerticalSpeedFpm float64      `json:"vertical_speed_fpm"`
	Squawk           string       `json:"squawk"`
	Origin           string       `json:"origin"`
	Destination      string       `json:"destination"`
	Registration     string       `json:"registration"`
	Restricted       bool         `json:"restricted"`
	Eco              bool         `json:"eco"`
	History          []geo.LatLng `json:"history,omitempty"`
}

// NewFlightView flattens f. History is included only when withHistory is set.
func NewFlightView(f *fleet.Flight, withHistory bool) FlightView {
	v := FlightView{
		ID:               f.ID,
		Callsign:         f.Callsign,
		Class:            f.Class.String(),
		ClassLabel:       f.Class.Info().Label,
		Operator:         f.OperatorCode(),
		Color:            render.IconColor(f),
		Model:            f.Model,
		Position:         f.Position,
		Heading:          f.Heading,
		AltitudeFt:       f.AltitudeFt,
		SpeedKt:          f.SpeedKt,
		Mach:             f.Mach(),
		VerticalSpeedFpm: f.VerticalSpeedFpm,
		Squawk:           f.Squawk,
		Registration:     f.Registration,
		Restricted:       f.Class.Restricted(),
		Eco:              f.Operator.Eco(),
	}
	if f.Operator != nil {
		v.OperatorName = f.Operator.Name
	}
	if f.Origin != nil {
		v.Origin = f.Origin.IATA
	}
	if f.Destination != nil {
		v.Destination = f.Destination.IATA
	}
	if withHistory {
		v.History = append([]geo.LatLng(nil), f.History...)
	}
	return v
}

type FlightsResponse struct {
	Tick    uint64       `json:"tick"`
	At      time.Time    `json:"at"`
	Live    int          `json:"live"`
	Total   int          `json:"total"`
	Flights []FlightView `json:"flights"`
}

type FlightDetailResponse struct {
	Flight    FlightView         `json:"flight"`
	Emissions analysis.Emissions `json:"emissions"`
	Selected  bool               `json:"selected"`
}

type SelectionResponse struct {
	Flight    *FlightView         `json:"flight,omitempty"`
	Emissions *analysis.Emissions `json:"emissions,omitempty"`
	Analysis  *analysis.Result    `json:"analysis,omitempty"`
	Analyzing bool                `json:"analyzing"`
	Overlay   render.OverlayState `json:"overlay"`
}

type FiltersResponse struct {
	Criteria view.Criteria `json:"criteria"`
	Search   string        `json:"search"`
	Live     int           `json:"live"`
}

type CatalogResponse struct {
	Classes   []catalog.ClassInfo `json:"classes,omitempty"`
	Operators []*catalog.Operator `json:"operators,omitempty"`
	Airports  []*catalog.Airport  `json:"airports,omitempty"`
}
