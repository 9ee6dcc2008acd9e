package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/geo"
)

func TestOverlayLifecycle(t *testing.T) {
	store := testStore(t, 4)
	all := store.All()
	surf := newFakeSurface()
	m := NewOverlayManager(surf, nil)

	assert.Equal(t, StateNone, m.Sync(nil, false))
	assert.Zero(t, surf.count("line"))

	a := all[0]
	assert.Equal(t, StateSelected, m.Sync(a, false))
	route, eco := m.Lines()
	require.NotEmpty(t, route)
	assert.Empty(t, eco)
	assert.Equal(t, RoutePath(a), surf.objects[route].points)

	a.Position = geo.LatLng{Lat: 1, Lng: 2}
	m.Sync(a, false)
	assert.Equal(t, geo.LatLng{Lat: 1, Lng: 2}, surf.objects[route].points[1], "route tracks the live position")
	assert.Equal(t, 1, surf.calls["create_line"])

	assert.Equal(t, StateSelectedWithAnalysis, m.Sync(a, true))
	_, eco = m.Lines()
	require.NotEmpty(t, eco)
	assert.Equal(t, EcoPath(a), surf.objects[eco].points)
	m.Sync(a, true)
	assert.Equal(t, 2, surf.count("line"), "at most one route and one eco line")

	b := all[1]
	assert.Equal(t, StateSelected, m.Sync(b, false))
	_, eco = m.Lines()
	assert.Empty(t, eco)
	assert.Equal(t, 1, surf.count("line"))
	assert.Equal(t, b.ID, m.SelectedID())

	m.Sync(b, true)
	assert.Equal(t, StateNone, m.Sync(nil, false))
	assert.Zero(t, surf.count("line"))
	assert.Empty(t, m.SelectedID())
}

func TestOverlayNewSelectionDropsEcoEvenIfAnalyzedFlagLeaks(t *testing.T) {
	store := testStore(t, 2)
	all := store.All()
	surf := newFakeSurface()
	m := NewOverlayManager(surf, nil)

	m.Sync(all[0], true)
	_, ecoA := m.Lines()
	m.Sync(all[1], true)
	_, ecoB := m.Lines()
	assert.NotEqual(t, ecoA, ecoB)
	assert.NotContains(t, surf.objects, ecoA)
	assert.Equal(t, EcoPath(all[1]), surf.objects[ecoB].points)
}

func TestEcoPathIsStable(t *testing.T) {
	cat := catalog.Default()
	dep, _ := cat.Airports.Lookup("LHR")
	arr, _ := cat.Airports.Lookup("JFK")
	f := &fleet.Flight{ID: "3E8", Origin: dep, Destination: arr}

	// 0x3E8 = 1000, 1000 % 10 - 5 = -5
	assert.Equal(t, -5, EcoOffset("3E8"))
	assert.Equal(t, -1, EcoOffset("3EC"))

	p := EcoPath(f)
	require.Len(t, p, 3)
	assert.Equal(t, dep.Position(), p[0])
	assert.Equal(t, arr.Position(), p[2])
	assert.InDelta(t, (dep.Lat+arr.Lat)/2-2.5, p[1].Lat, 1e-9)
	assert.InDelta(t, (dep.Lng+arr.Lng)/2-2.5, p[1].Lng, 1e-9)

	f.Position = geo.LatLng{Lat: 10, Lng: 10}
	assert.Equal(t, p, EcoPath(f), "eco path ignores live position")

	off := EcoOffset("not-hex")
	assert.Equal(t, off, EcoOffset("not-hex"))
	assert.GreaterOrEqual(t, off, -5)
	assert.LessOrEqual(t, off, 4)
}

func TestOverlaySurvivesSurfaceFailure(t *testing.T) {
	store := testStore(t, 1)
	f := store.All()[0]
	surf := newFakeSurface()
	surf.reject = func(op string, _ geo.LatLng) bool { return op == "create_line" }
	m := NewOverlayManager(surf, nil)

	assert.Equal(t, StateSelected, m.Sync(f, true))
	route, eco := m.Lines()
	assert.Empty(t, route)
	assert.Empty(t, eco)

	surf.reject = nil
	assert.Equal(t, StateSelectedWithAnalysis, m.Sync(f, true))
}
