package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	lhr := LatLng{Lat: 51.4700, Lng: -0.4543}
	jfk := LatLng{Lat: 40.6413, Lng: -73.7781}

	d := lhr.DistanceKm(jfk)
	assert.InDelta(t, 5540, d, 40, "LHR-JFK great circle")
	assert.InDelta(t, d, jfk.DistanceKm(lhr), 1e-9, "distance must be symmetric")
	assert.Zero(t, lhr.DistanceKm(lhr))
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, 10.0, Interpolate(10, 20, 0))
	assert.Equal(t, 20.0, Interpolate(10, 20, 1))
	assert.Equal(t, 15.0, Interpolate(10, 20, 0.5))

	mid := Midpoint(LatLng{Lat: 0, Lng: 0}, LatLng{Lat: 10, Lng: -20})
	assert.Equal(t, LatLng{Lat: 5, Lng: -10}, mid)
}

func TestWrapLongitude(t *testing.T) {
	for _, tc := range []struct {
		in, out float64
	}{
		{0, 0},
		{180, 180},
		{180.01, -179.99},
		{-180, 180},
		{-180.5, 179.5},
		{540, 180},
		{-725, -5},
	} {
		assert.InDelta(t, tc.out, WrapLongitude(tc.in), 1e-9, "wrap(%v)", tc.in)
	}
}

func TestHeadings(t *testing.T) {
	assert.Equal(t, 180.0, OppositeHeading(0))
	assert.Equal(t, 10.0, OppositeHeading(190))
	assert.Equal(t, 350.0, NormalizeHeading(-10))
	assert.Equal(t, 0.0, NormalizeHeading(360))

	origin := LatLng{}
	assert.InDelta(t, 0, FlatBearing(origin, LatLng{Lat: 1}), 1e-9)
	assert.InDelta(t, 90, FlatBearing(origin, LatLng{Lng: 1}), 1e-9)
	assert.InDelta(t, 180, FlatBearing(origin, LatLng{Lat: -1}), 1e-9)
	assert.InDelta(t, 270, FlatBearing(origin, LatLng{Lng: -1}), 1e-9)
}

func TestValid(t *testing.T) {
	assert.True(t, LatLng{Lat: 85, Lng: 180}.Valid())
	assert.False(t, LatLng{Lat: 91}.Valid())
	assert.False(t, LatLng{Lng: -181}.Valid())
	assert.False(t, LatLng{Lat: math.NaN()}.Valid())
}
