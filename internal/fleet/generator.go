package fleet

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/geo"
)

// FirstID is the numeric value of the first generated flight id.
const FirstID = 1000

var (
	airlinerModels    = []string{"Boeing 737", "Airbus A320", "Boeing 787", "Airbus A350", "Boeing 777"}
	militaryOperators = []string{"RCH", "RRR", "NATO"}
	cargoOperators    = []string{"FDX", "UPS"}
	// passengerOperators are the first 16 rows of the operator table.
	passengerOperators = []string{
		"AAL", "UAL", "DAL", "SWA", "BAW", "DLH", "AFR", "KLM",
		"RYR", "UAE", "QTR", "SIA", "CPA", "ANA", "JAL", "QFA",
	}
)

// Generator synthesizes demo traffic. It is the stand-in for an external feed.
type Generator struct {
	rng     *rand.Rand
	catalog *catalog.Catalog
}

// NewGenerator builds a generator. A zero seed uses the clock.
func NewGenerator(cat *catalog.Catalog, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), catalog: cat}
}

// Generate returns count flights with unique hex ids.
func (g *Generator) Generate(count int) ([]Flight, error) {
	airports := g.catalog.Airports.All()
	if len(airports) < 2 {
		return nil, fmt.Errorf("need at least two airports, have %d", len(airports))
	}

	flights := make([]Flight, 0, count)
	for i := 0; i < count; i++ {
		class := g.pickClass()
		info := class.Info()
		op, err := g.pickOperator(class)
		if err != nil {
			return nil, err
		}

		dep := airports[g.rng.Intn(len(airports))]
		arr := airports[g.rng.Intn(len(airports))]
		for arr.IATA == dep.IATA {
			arr = airports[g.rng.Intn(len(airports))]
		}

		progress := g.rng.Float64()
		pos := geo.Lerp(dep.Position(), arr.Position(), progress)

		model := airlinerModels[g.rng.Intn(len(airlinerModels))]
		squawk := strconv.Itoa(g.rng.Intn(7000) + 1000)
		co2 := 0.8
		switch class {
		case catalog.ClassMilitary:
			model = "C-17 Globemaster"
			squawk = "0000"
			co2 = 1.5
		case catalog.ClassCargo:
			co2 = 1.5
		}

		country := op.Country
		if country == "" {
			country = "N"
		}

		flights = append(flights, Flight{
			ID:               strings.ToUpper(strconv.FormatInt(int64(FirstID+i), 16)),
			Callsign:         fmt.Sprintf("%s%d", op.Code, g.rng.Intn(9000)+100),
			Class:            class,
			Operator:         op,
			Model:            model,
			Position:         pos,
			Heading:          geo.FlatBearing(dep.Position(), arr.Position()),
			AltitudeFt:       info.BaseAltFt + math.Floor(g.rng.Float64()*4000-2000),
			SpeedKt:          info.BaseSpeedKt + math.Floor(g.rng.Float64()*60-30),
			VerticalSpeedFpm: math.Floor(g.rng.Float64()*2000 - 1000),
			Squawk:           squawk,
			Origin:           dep,
			Destination:      arr,
			Registration:     country + "-" + g.registrationSuffix(),
			CO2Factor:        co2,
		})
	}
	return flights, nil
}

func (g *Generator) pickClass() catalog.Class {
	r := g.rng.Float64()
	switch {
	case r > 0.95:
		return catalog.ClassMilitary
	case r > 0.90:
		return catalog.ClassCargo
	case r > 0.88:
		return catalog.ClassHelicopter
	case r > 0.86:
		return catalog.ClassAirTaxi
	default:
		return catalog.ClassCommercial
	}
}

func (g *Generator) pickOperator(class catalog.Class) (*catalog.Operator, error) {
	var pool []string
	switch class {
	case catalog.ClassMilitary:
		pool = militaryOperators
	case catalog.ClassCargo:
		pool = cargoOperators
	case catalog.ClassHelicopter, catalog.ClassAirTaxi:
		pool = []string{catalog.PrivateOperatorCode}
	default:
		pool = passengerOperators
	}
	code := pool[g.rng.Intn(len(pool))]
	op, ok := g.catalog.Operators.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("operator %s missing from catalog", code)
	}
	return op, nil
}

const registrationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (g *Generator) registrationSuffix() string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteByte(registrationAlphabet[g.rng.Intn(len(registrationAlphabet))])
	}
	return b.String()
}
