package catalog

import (
	"errors"
	"fmt"
	"strings"

	"ecofly/radar/internal/geo"
)

var (
	ErrDuplicateAirport = errors.New("duplicate airport")
	ErrInvalidAirport   = errors.New("invalid airport")
)

// Airport is a static reference point shared by pointer between flights.
type Airport struct {
	IATA string  `json:"iata"`
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (a *Airport) Position() geo.LatLng {
	return geo.LatLng{Lat: a.Lat, Lng: a.Lng}
}

// DefaultAirports is the built-in airport list used when no catalog source is configured.
func DefaultAirports() []Airport {
	return []Airport{
		{IATA: "LHR", Lat: 51.4700, Lng: -0.4543, City: "London"},
		{IATA: "JFK", Lat: 40.6413, Lng: -73.7781, City: "New York"},
		{IATA: "DXB", Lat: 25.2532, Lng: 55.3657, City: "Dubai"},
		{IATA: "HND", Lat: 35.5494, Lng: 139.7798, City: "Tokyo"},
		{IATA: "LAX", Lat: 33.9416, Lng: -118.4085, City: "Los Angeles"},
		{IATA: "CDG", Lat: 49.0097, Lng: 2.5479, City: "Paris"},
		{IATA: "AMS", Lat: 52.3105, Lng: 4.7683, City: "Amsterdam"},
		{IATA: "SIN", Lat: 1.3644, Lng: 103.9915, City: "Singapore"},
		{IATA: "SYD", Lat: -33.9399, Lng: 151.1753, City: "Sydney"},
		{IATA: "FRA", Lat: 50.0379, Lng: 8.5622, City: "Frankfurt"},
		{IATA: "DFW", Lat: 32.8998, Lng: -97.0403, City: "Dallas"},
		{IATA: "HKG", Lat: 22.3080, Lng: 113.9185, City: "Hong Kong"},
		{IATA: "IST", Lat: 41.2753, Lng: 28.7519, City: "Istanbul"},
		{IATA: "MIA", Lat: 25.7959, Lng: -80.2870, City: "Miami"},
	}
}

// Airports is an immutable airport table.
type Airports struct {
	list   []*Airport
	byIATA map[string]*Airport
}

// NewAirports validates and indexes list.
func NewAirports(list []Airport) (*Airports, error) {
	a := &Airports{byIATA: make(map[string]*Airport, len(list))}
	for i := range list {
		ap := list[i]
		ap.IATA = strings.ToUpper(strings.TrimSpace(ap.IATA))
		ap.City = strings.TrimSpace(ap.City)
		if ap.IATA == "" || !ap.Position().Valid() {
			return nil, fmt.Errorf("%w: %q at (%v,%v)", ErrInvalidAirport, ap.IATA, ap.Lat, ap.Lng)
		}
		if _, dup := a.byIATA[ap.IATA]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAirport, ap.IATA)
		}
		a.byIATA[ap.IATA] = &ap
		a.list = append(a.list, &ap)
	}
	return a, nil
}

func (a *Airports) Lookup(iata string) (*Airport, bool) {
	ap, ok := a.byIATA[strings.ToUpper(strings.TrimSpace(iata))]
	return ap, ok
}

func (a *Airports) All() []*Airport {
	return append([]*Airport(nil), a.list...)
}

func (a *Airports) Len() int {
	return len(a.list)
}

// Catalog bundles the reference tables resolved once at startup.
type Catalog struct {
	Operators *Operators
	Airports  *Airports
}

// Default builds a catalog from the built-in tables.
func Default() *Catalog {
	airports, err := NewAirports(DefaultAirports())
	if err != nil {
		panic(err)
	}
	return &Catalog{Operators: DefaultOperators(), Airports: airports}
}
