package catalog

import "strings"

// Class is an aircraft classification. Its metadata lives in classTable and is
// resolved by index, never by string lookup.
type Class uint8

const (
	ClassCommercial Class = iota
	ClassCargo
	ClassMilitary
	ClassHelicopter
	ClassAirTaxi
	ClassGeneralAviation

	numClasses
)

// ClassInfo is the static data associated with a Class.
type ClassInfo struct {
	Code        string  `json:"code"`
	Label       string  `json:"label"`
	Glyph       string  `json:"glyph"`
	BaseSpeedKt float64 `json:"base_speed_kt"`
	BaseAltFt   float64 `json:"base_alt_ft"`
	Restricted  bool    `json:"restricted"`
}

var classTable = [numClasses]ClassInfo{
	ClassCommercial:      {Code: "COMM", Label: "Commercial", Glyph: "fa-plane", BaseSpeedKt: 480, BaseAltFt: 35000},
	ClassCargo:           {Code: "CARGO", Label: "Cargo / Heavy", Glyph: "fa-truck-plane", BaseSpeedKt: 460, BaseAltFt: 33000},
	ClassMilitary:        {Code: "MIL", Label: "Military / Gov", Glyph: "fa-jet-fighter", BaseSpeedKt: 600, BaseAltFt: 40000, Restricted: true},
	ClassHelicopter:      {Code: "HELI", Label: "Helicopter", Glyph: "fa-helicopter", BaseSpeedKt: 120, BaseAltFt: 3000},
	ClassAirTaxi:         {Code: "EVTOL", Label: "Air Taxi", Glyph: "fa-paper-plane", BaseSpeedKt: 100, BaseAltFt: 1500},
	ClassGeneralAviation: {Code: "GA", Label: "General Aviation", Glyph: "fa-plane-propeller", BaseSpeedKt: 140, BaseAltFt: 8000},
}

var classByCode = func() map[string]Class {
	m := make(map[string]Class, numClasses)
	for c := Class(0); c < numClasses; c++ {
		m[classTable[c].Code] = c
	}
	return m
}()

// Info returns the class metadata. Invalid classes yield the zero ClassInfo.
func (c Class) Info() ClassInfo {
	if !c.Valid() {
		return ClassInfo{}
	}
	return classTable[c]
}

func (c Class) Valid() bool {
	return c < numClasses
}

func (c Class) Restricted() bool {
	return c.Info().Restricted
}

func (c Class) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return classTable[c].Code
}

// MarshalText encodes the class as its code.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseClass resolves a class code, case-insensitively.
func ParseClass(code string) (Class, bool) {
	c, ok := classByCode[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Classes lists every class in declaration order.
func Classes() []Class {
	out := make([]Class, 0, numClasses)
	for c := Class(0); c < numClasses; c++ {
		out = append(out, c)
	}
	return out
}
