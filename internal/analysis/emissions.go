package analysis

import (
	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/fleet"
)

// DefaultCO2RateKgPerKm applies to classes without a tabulated rate.
const DefaultCO2RateKgPerKm = 10.0

var co2Rates = map[catalog.Class]float64{
	catalog.ClassCommercial:      12.5,
	catalog.ClassCargo:           16,
	catalog.ClassMilitary:        22,
	catalog.ClassHelicopter:      4.5,
	catalog.ClassAirTaxi:         0.05,
	catalog.ClassGeneralAviation: 1.2,
}

// CO2RateKgPerKm is the per-kilometre emission rate of a class.
func CO2RateKgPerKm(c catalog.Class) float64 {
	if r, ok := co2Rates[c]; ok {
		return r
	}
	return DefaultCO2RateKgPerKm
}

// RouteDistanceKm is the great-circle length of the origin-destination leg.
func RouteDistanceKm(f *fleet.Flight) float64 {
	if f.Origin == nil || f.Destination == nil {
		return 0
	}
	return f.Origin.Position().DistanceKm(f.Destination.Position())
}

// RouteTotalKg estimates the emissions of the whole leg.
func RouteTotalKg(f *fleet.Flight) float64 {
	return RouteDistanceKm(f) * CO2RateKgPerKm(f.Class)
}

// Emissions is the live per-flight figure shown next to the selected flight.
type Emissions struct {
	DistanceKm float64 `json:"distance_km"`
	CO2Kg      float64 `json:"co2_kg"`
	Mach       float64 `json:"mach"`
}

// EmittedSoFar measures from the origin to the current position.
func EmittedSoFar(f *fleet.Flight) Emissions {
	e := Emissions{Mach: f.Mach()}
	if f.Origin == nil {
		return e
	}
	e.DistanceKm = f.Origin.Position().DistanceKm(f.Position)
	e.CO2Kg = e.DistanceKm * CO2RateKgPerKm(f.Class)
	return e
}
