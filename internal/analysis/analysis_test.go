package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/common"
	"ecofly/radar/internal/fleet"
)

func lhrJfk(t *testing.T, class catalog.Class) fleet.Flight {
	t.Helper()
	cat := catalog.Default()
	dep, ok := cat.Airports.Lookup("LHR")
	require.True(t, ok)
	arr, ok := cat.Airports.Lookup("JFK")
	require.True(t, ok)
	return fleet.Flight{
		ID:          "3E8",
		Class:       class,
		Operator:    cat.Operators.MustLookup("BAW"),
		Origin:      dep,
		Destination: arr,
		Position:    dep.Position(),
		SpeedKt:     661,
	}
}

func TestCO2Rates(t *testing.T) {
	assert.Equal(t, 12.5, CO2RateKgPerKm(catalog.ClassCommercial))
	assert.Equal(t, 0.05, CO2RateKgPerKm(catalog.ClassAirTaxi))
	assert.Equal(t, DefaultCO2RateKgPerKm, CO2RateKgPerKm(catalog.Class(200)))
}

func TestEmittedSoFar(t *testing.T) {
	f := lhrJfk(t, catalog.ClassCommercial)
	e := EmittedSoFar(&f)
	assert.Zero(t, e.DistanceKm)
	assert.Equal(t, 1.0, e.Mach)

	f.Position = f.Destination.Position()
	e = EmittedSoFar(&f)
	assert.InDelta(t, 5540, e.DistanceKm, 40)
	assert.InDelta(t, e.DistanceKm*12.5, e.CO2Kg, 1e-6)
}

func TestEstimatorResult(t *testing.T) {
	est := NewEstimator(0, common.NewMemoryCache(time.Minute, 2*time.Minute), 42, nil)
	f := lhrJfk(t, catalog.ClassCargo)

	for i := 0; i < 50; i++ {
		res, err := est.RequestAnalysis(context.Background(), f)
		require.NoError(t, err)
		assert.Equal(t, "3E8", res.FlightID)
		assert.Equal(t, math.Round(RouteTotalKg(&f)), res.CurrentTotalKg, "whole kilograms")
		assert.GreaterOrEqual(t, res.SavingPercent, 8)
		assert.Less(t, res.SavingPercent, 20)
		assert.Equal(t, math.Round(RouteTotalKg(&f)*float64(res.SavingPercent)/100), res.SavingKg)
		assert.False(t, res.CompletedAt.IsZero())
	}
}

func TestEstimatorUsesRouteCache(t *testing.T) {
	cache := common.NewMemoryCache(time.Minute, 2*time.Minute)
	est := NewEstimator(0, cache, 1, nil)
	f := lhrJfk(t, catalog.ClassCommercial)

	_, err := est.RequestAnalysis(context.Background(), f)
	require.NoError(t, err)
	cached, ok := cache.Get("route:COMM:LHR-JFK")
	require.True(t, ok)

	cache.Set("route:COMM:LHR-JFK", 1000.0, time.Minute)
	res, err := est.RequestAnalysis(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.CurrentTotalKg)
	assert.NotEqual(t, cached, res.CurrentTotalKg)
}

func TestEstimatorHonorsCancellation(t *testing.T) {
	est := NewEstimator(time.Hour, nil, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := est.RequestAnalysis(ctx, lhrJfk(t, catalog.ClassCommercial))
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("analysis did not stop after cancel")
	}
}

func TestEstimatorWaitsForDelay(t *testing.T) {
	est := NewEstimator(30*time.Millisecond, nil, 1, nil)
	start := time.Now()
	_, err := est.RequestAnalysis(context.Background(), lhrJfk(t, catalog.ClassHelicopter))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestEstimatorRejectsIncompleteFlight(t *testing.T) {
	est := NewEstimator(0, nil, 1, nil)
	_, err := est.RequestAnalysis(context.Background(), fleet.Flight{ID: "X"})
	assert.ErrorIs(t, err, fleet.ErrMissingField)
}
