package render

import (
	"math"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"ecofly/radar/internal/fleet"
)

const (
	BaseIconSize     = 26
	SelectedIconSize = 40
	SelectedZIndex   = 1000

	AlertColor = "#ef4444"
	EcoColor   = "#10b981"

	minShadowOffset = 2
	feetPerShadowPx = 2000
)

// Icon is the rendering description of a flight marker. Heading and shadow
// offset are quantized to whole units so equivalent icons compare equal.
type Icon struct {
	Glyph        string  `json:"glyph" msgpack:"glyph"`
	Class        string  `json:"class" msgpack:"class"`
	Color        string  `json:"color" msgpack:"color"`
	Size         int     `json:"size" msgpack:"size"`
	AnchorPx     int     `json:"anchor_px" msgpack:"anchor_px"`
	Rotation     float64 `json:"rotation" msgpack:"rotation"`
	ShadowOffset float64 `json:"shadow_offset" msgpack:"shadow_offset"`
	Selected     bool    `json:"selected" msgpack:"selected"`
	Label        string  `json:"label,omitempty" msgpack:"label,omitempty"`
	ZIndexOffset int     `json:"z_index_offset" msgpack:"z_index_offset"`
}

// IconFactory builds marker icons and memoizes them by their inputs.
type IconFactory struct {
	cache *expirable.LRU[Icon, Icon]
}

func NewIconFactory(size int, ttl time.Duration) *IconFactory {
	if size <= 0 {
		size = 1024
	}
	return &IconFactory{cache: expirable.NewLRU[Icon, Icon](size, nil, ttl)}
}

// IconColor applies the override rules: restricted classes use the alert
// color, the eco operator uses the eco color, everyone else their operator color.
func IconColor(f *fleet.Flight) string {
	switch {
	case f.Class.Restricted():
		return AlertColor
	case f.Operator.Eco():
		return EcoColor
	case f.Operator != nil:
		return f.Operator.Color
	}
	return ""
}

// ShadowOffset is the pseudo-3D drop shadow distance derived from altitude.
func ShadowOffset(altitudeFt float64) float64 {
	return math.Round(math.Max(minShadowOffset, altitudeFt/feetPerShadowPx))
}

// Create returns the icon for f in the given selection state.
func (fac *IconFactory) Create(f *fleet.Flight, selected bool) Icon {
	key := Icon{
		Glyph:        f.Class.Info().Glyph,
		Class:        f.Class.String(),
		Color:        IconColor(f),
		Rotation:     math.Round(f.Heading),
		ShadowOffset: ShadowOffset(f.AltitudeFt),
		Selected:     selected,
	}
	if selected {
		key.Label = f.Callsign
	}
	if icon, ok := fac.cache.Get(key); ok {
		return icon
	}

	icon := key
	icon.Size = BaseIconSize
	if selected {
		icon.Size = SelectedIconSize
		icon.ZIndexOffset = SelectedZIndex
	}
	icon.AnchorPx = icon.Size
	fac.cache.Add(key, icon)
	return icon
}

func (fac *IconFactory) Len() int {
	return fac.cache.Len()
}
