package view

import (
	"strings"

	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/fleet"
)

// All is the wildcard value for the class and operator filters.
const All = "ALL"

// Criteria is the user-controlled filter state.
type Criteria struct {
	Class         string  `json:"class"`
	Operator      string  `json:"operator"`
	MinAltitudeFt float64 `json:"min_altitude_ft"`
	MinSpeedKt    float64 `json:"min_speed_kt"` // validated and echoed, not matched
}

// DefaultCriteria matches every flight.
func DefaultCriteria() Criteria {
	return Criteria{Class: All, Operator: All}
}

// Normalize upper-cases codes and maps empty codes to All.
func (c Criteria) Normalize() Criteria {
	c.Class = strings.ToUpper(strings.TrimSpace(c.Class))
	c.Operator = strings.ToUpper(strings.TrimSpace(c.Operator))
	if c.Class == "" {
		c.Class = All
	}
	if c.Operator == "" {
		c.Operator = All
	}
	return c
}

// Valid reports whether every field is inside its value domain for the
// given operator table.
func (c Criteria) Valid(ops *catalog.Operators) bool {
	c = c.Normalize()
	if c.Class != All {
		if _, ok := catalog.ParseClass(c.Class); !ok {
			return false
		}
	}
	if c.Operator != All && ops != nil {
		if _, ok := ops.Lookup(c.Operator); !ok {
			return false
		}
	}
	return c.MinAltitudeFt >= 0 && c.MinSpeedKt >= 0
}

// NormalizeQuery produces the form search text is matched in.
func NormalizeQuery(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// Visible returns, in input order, the flights that pass criteria and the
// search text. It holds no state and does not modify its inputs.
func Visible(flights []*fleet.Flight, c Criteria, search string) []*fleet.Flight {
	c = c.Normalize()
	q := NormalizeQuery(search)
	out := make([]*fleet.Flight, 0, len(flights))
	for _, f := range flights {
		if Matches(f, c, q) {
			out = append(out, f)
		}
	}
	return out
}

// Matches applies the filter to a single flight. c must be normalized and q
// produced by NormalizeQuery.
func Matches(f *fleet.Flight, c Criteria, q string) bool {
	if q != "" && !matchesSearch(f, q) {
		return false
	}
	if c.Class != All && f.Class.String() != c.Class {
		return false
	}
	if c.Operator != All && f.OperatorCode() != c.Operator {
		return false
	}
	return f.AltitudeFt >= c.MinAltitudeFt
}

func matchesSearch(f *fleet.Flight, q string) bool {
	contains := func(field string) bool {
		return strings.Contains(strings.ToUpper(field), q)
	}
	if contains(f.Callsign) || contains(f.Registration) || contains(f.Model) {
		return true
	}
	if f.Operator != nil && contains(f.Operator.Name) {
		return true
	}
	for _, ap := range []*catalog.Airport{f.Origin, f.Destination} {
		if ap != nil && (contains(ap.IATA) || contains(ap.City)) {
			return true
		}
	}
	return false
}
