package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassTable(t *testing.T) {
	for _, c := range Classes() {
		info := c.Info()
		assert.NotEmpty(t, info.Code, c)
		assert.Positive(t, info.BaseSpeedKt, c)
		assert.Positive(t, info.BaseAltFt, c)
	}
	assert.Len(t, Classes(), 6)
	assert.True(t, ClassMilitary.Restricted())
	assert.False(t, ClassCommercial.Restricted())
	assert.Equal(t, "unknown", Class(200).String())
	assert.Equal(t, ClassInfo{}, Class(200).Info())
}

func TestParseClass(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out Class
		ok  bool
	}{
		{"COMM", ClassCommercial, true},
		{"cargo", ClassCargo, true},
		{" MIL ", ClassMilitary, true},
		{"HELI", ClassHelicopter, true},
		{"EVTOL", ClassAirTaxi, true},
		{"GA", ClassGeneralAviation, true},
		{"ALL", 0, false},
		{"", 0, false},
	} {
		got, ok := ParseClass(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.Equal(t, tc.out, got, tc.in)
		}
	}
}

func TestOperators(t *testing.T) {
	ops := DefaultOperators()
	assert.Equal(t, 23, ops.Len())

	eco, ok := ops.Lookup("eco")
	require.True(t, ok)
	assert.True(t, eco.Eco())

	dal := ops.MustLookup("DAL")
	assert.False(t, dal.Eco())
	assert.Equal(t, "Delta Air Lines", dal.Name)

	_, ok = ops.Lookup("XXX")
	assert.False(t, ok)

	byName := ops.ByName()
	for i := 1; i < len(byName); i++ {
		assert.LessOrEqual(t, byName[i-1].Name, byName[i].Name)
	}

	_, err := NewOperators([]Operator{{Code: "AAA"}, {Code: "aaa"}})
	assert.Error(t, err)
}

func TestAirports(t *testing.T) {
	cat := Default()
	assert.Equal(t, 14, cat.Airports.Len())

	lhr, ok := cat.Airports.Lookup("lhr")
	require.True(t, ok)
	assert.Equal(t, "London", lhr.City)

	_, err := NewAirports([]Airport{{IATA: "AAA"}, {IATA: "AAA"}})
	assert.True(t, errors.Is(err, ErrDuplicateAirport))

	_, err = NewAirports([]Airport{{IATA: "BAD", Lat: 95}})
	assert.True(t, errors.Is(err, ErrInvalidAirport))

	_, err = NewAirports([]Airport{{IATA: " ", Lat: 1}})
	assert.True(t, errors.Is(err, ErrInvalidAirport))
}
