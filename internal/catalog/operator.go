package catalog

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// EcoOperatorCode marks the operator whose aircraft render in the eco color.
	EcoOperatorCode = "ECO"
	// PrivateOperatorCode is assigned to rotorcraft and air taxis.
	PrivateOperatorCode = "PVT"
)

// Operator is an airline or other aircraft operator.
type Operator struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Color   string `json:"color"`
}

// Eco reports whether this is the distinguished eco operator.
func (o *Operator) Eco() bool {
	return o != nil && o.Code == EcoOperatorCode
}

var defaultOperators = []Operator{
	// Americas
	{Code: "AAL", Name: "American Airlines", Country: "US", Color: "#c2c2c2"},
	{Code: "UAL", Name: "United Airlines", Country: "US", Color: "#005DAA"},
	{Code: "DAL", Name: "Delta Air Lines", Country: "US", Color: "#E31837"},
	{Code: "SWA", Name: "Southwest", Country: "US", Color: "#F9B612"},
	// Europe
	{Code: "BAW", Name: "British Airways", Country: "GB", Color: "#002E70"},
	{Code: "DLH", Name: "Lufthansa", Country: "DE", Color: "#FFAB00"},
	{Code: "AFR", Name: "Air France", Country: "FR", Color: "#002157"},
	{Code: "KLM", Name: "KLM", Country: "NL", Color: "#00A1DE"},
	{Code: "RYR", Name: "Ryanair", Country: "IE", Color: "#073590"},
	// Middle East & Africa
	{Code: "UAE", Name: "Emirates", Country: "AE", Color: "#FF0000"},
	{Code: "QTR", Name: "Qatar Airways", Country: "QA", Color: "#5C0632"},
	// Asia Pacific
	{Code: "SIA", Name: "Singapore Airlines", Country: "SG", Color: "#FDB913"},
	{Code: "CPA", Name: "Cathay Pacific", Country: "HK", Color: "#006B6E"},
	{Code: "ANA", Name: "All Nippon Airways", Country: "JP", Color: "#1046A8"},
	{Code: "JAL", Name: "Japan Airlines", Country: "JP", Color: "#CC0000"},
	{Code: "QFA", Name: "Qantas", Country: "AU", Color: "#E0001B"},
	// Cargo
	{Code: "FDX", Name: "FedEx Express", Country: "US", Color: "#4D148C"},
	{Code: "UPS", Name: "UPS Airlines", Country: "US", Color: "#FFB500"},
	// Military
	{Code: "RCH", Name: "US Air Force", Country: "US", Color: "#475569"},
	{Code: "RRR", Name: "Royal Air Force", Country: "GB", Color: "#5B8FA6"},
	{Code: "NATO", Name: "NATO", Country: "INT", Color: "#1e3a8a"},
	// Eco
	{Code: EcoOperatorCode, Name: "ECO FLY Zero", Country: "INT", Color: "#10b981"},
}

var privateOperator = Operator{Code: PrivateOperatorCode, Name: "Private Ops", Color: "#94a3b8"}

// Operators is an immutable operator table with O(1) lookup by code.
type Operators struct {
	list   []*Operator
	byCode map[string]*Operator
}

// DefaultOperators returns the built-in operator table, including the private operator.
func DefaultOperators() *Operators {
	ops, err := NewOperators(append(append([]Operator(nil), defaultOperators...), privateOperator))
	if err != nil {
		panic(err)
	}
	return ops
}

// NewOperators indexes list. Codes must be unique and non-empty.
func NewOperators(list []Operator) (*Operators, error) {
	o := &Operators{byCode: make(map[string]*Operator, len(list))}
	for i := range list {
		op := list[i]
		op.Code = strings.ToUpper(strings.TrimSpace(op.Code))
		if op.Code == "" {
			return nil, fmt.Errorf("operator %q has no code", op.Name)
		}
		if _, dup := o.byCode[op.Code]; dup {
			return nil, fmt.Errorf("duplicate operator code %s", op.Code)
		}
		o.byCode[op.Code] = &op
		o.list = append(o.list, &op)
	}
	return o, nil
}

func (o *Operators) Lookup(code string) (*Operator, bool) {
	op, ok := o.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return op, ok
}

// MustLookup panics on unknown codes; only used with built-in codes.
func (o *Operators) MustLookup(code string) *Operator {
	op, ok := o.Lookup(code)
	if !ok {
		panic("catalog: unknown operator " + code)
	}
	return op
}

// All returns operators in table order.
func (o *Operators) All() []*Operator {
	return append([]*Operator(nil), o.list...)
}

// ByName returns operators sorted by display name.
func (o *Operators) ByName() []*Operator {
	out := o.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (o *Operators) Len() int {
	return len(o.list)
}
