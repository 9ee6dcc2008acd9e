package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/geo"
)

func flightAt(cat *catalog.Catalog, id string, pos geo.LatLng, heading, speed float64) fleet.Flight {
	dep, _ := cat.Airports.Lookup("LHR")
	arr, _ := cat.Airports.Lookup("JFK")
	return fleet.Flight{
		ID:          id,
		Callsign:    "TST" + id,
		Class:       catalog.ClassCommercial,
		Operator:    cat.Operators.MustLookup("BAW"),
		Origin:      dep,
		Destination: arr,
		Position:    pos,
		Heading:     heading,
		SpeedKt:     speed,
	}
}

func TestAdvanceFlatPlaneStep(t *testing.T) {
	cat := catalog.Default()
	f := flightAt(cat, "A", geo.LatLng{Lat: 10, Lng: 20}, 0, 3600)

	Advance(&f, 0.2)
	assert.InDelta(t, 10.2, f.Position.Lat, 1e-9, "due north adds to latitude")
	assert.InDelta(t, 20, f.Position.Lng, 1e-9)

	f.Heading = 90
	Advance(&f, 0.2)
	assert.InDelta(t, 10.2, f.Position.Lat, 1e-9)
	assert.InDelta(t, 20.2, f.Position.Lng, 1e-9, "due east adds to longitude")

	f.Heading = 225
	Advance(&f, 1)
	assert.InDelta(t, 10.2-0.70710678, f.Position.Lat, 1e-6)
	assert.InDelta(t, 20.2-0.70710678, f.Position.Lng, 1e-6)
	assert.Len(t, f.History, 3)
}

func TestAntimeridianWrap(t *testing.T) {
	cat := catalog.Default()
	f := flightAt(cat, "A", geo.LatLng{Lat: 0, Lng: 179.99}, 90, 360)

	_, wrapped := Advance(&f, DefaultDistanceScale)
	assert.True(t, wrapped)
	assert.InDelta(t, -179.99, f.Position.Lng, 1e-9)
	assert.LessOrEqual(t, f.Position.Lng, 180.0)
	assert.Greater(t, f.Position.Lng, -180.0)

	f.Heading = 270
	_, wrapped = Advance(&f, DefaultDistanceScale)
	assert.True(t, wrapped)
	assert.InDelta(t, 179.99, f.Position.Lng, 1e-9)
}

func TestPoleBounce(t *testing.T) {
	cat := catalog.Default()
	f := flightAt(cat, "A", geo.LatLng{Lat: 84.9, Lng: 0}, 0, 3600)

	bounced, _ := Advance(&f, 1)
	require.True(t, bounced)
	assert.Equal(t, 180.0, f.Heading)
	assert.Equal(t, fleet.PolarLimit, f.Position.Lat, "held at the band edge")
	assert.Len(t, f.History, 1, "the step still applies")

	prev := f.Position.Lat
	bounced, _ = Advance(&f, 1)
	assert.False(t, bounced)
	assert.Less(t, f.Position.Lat, prev, "moves back toward the equator")

	slow := flightAt(cat, "B", geo.LatLng{Lat: 84.9, Lng: 0}, 0, 36)
	bounced, _ = Advance(&slow, 1)
	assert.False(t, bounced)
	assert.Equal(t, 0.0, slow.Heading)
	assert.InDelta(t, 84.91, slow.Position.Lat, 1e-9)

	south := flightAt(cat, "C", geo.LatLng{Lat: -84.99, Lng: 0}, 200, 3600)
	bounced, _ = Advance(&south, 1)
	assert.True(t, bounced)
	assert.Equal(t, 20.0, south.Heading)
	assert.GreaterOrEqual(t, south.Position.Lat, -fleet.PolarLimit)
}

func TestTickInvariantsHoldOverManyTicks(t *testing.T) {
	cat := catalog.Default()
	flights, err := fleet.NewGenerator(cat, 7).Generate(200)
	require.NoError(t, err)
	// push a few flights straight at the poles and the antimeridian
	flights[0].Heading, flights[0].SpeedKt = 0, 900
	flights[1].Heading, flights[1].SpeedKt = 180, 900
	flights[2].Heading, flights[2].SpeedKt = 90, 900

	store, err := fleet.NewStore(flights)
	require.NoError(t, err)
	eng := NewTickEngine(store, 5, nil)

	var bounces int
	for i := 0; i < 2000; i++ {
		st := eng.Tick()
		bounces += st.Bounces
		assert.Equal(t, 200, st.Flights)
	}
	assert.Equal(t, uint64(2000), eng.Ticks())
	assert.Equal(t, uint64(2000), store.Generation())
	assert.Positive(t, bounces)

	store.Each(func(f *fleet.Flight) {
		assert.GreaterOrEqual(t, f.Position.Lat, -fleet.PolarLimit, f.ID)
		assert.LessOrEqual(t, f.Position.Lat, fleet.PolarLimit, f.ID)
		assert.Greater(t, f.Position.Lng, -180.0, f.ID)
		assert.LessOrEqual(t, f.Position.Lng, 180.0, f.ID)
		assert.GreaterOrEqual(t, f.Heading, 0.0)
		assert.Less(t, f.Heading, 360.0)
		require.Len(t, f.History, fleet.HistoryCap)
		assert.Equal(t, f.Position, f.History[len(f.History)-1], "newest history entry is the current position")
	})
}

func TestNewTickEngineDefaults(t *testing.T) {
	store, err := fleet.NewStore(nil)
	require.NoError(t, err)
	eng := NewTickEngine(store, 0, nil)
	assert.Equal(t, DefaultDistanceScale, eng.scale)
	st := eng.Tick()
	assert.Zero(t, st.Flights)
	assert.Equal(t, uint64(1), st.Tick)
}
