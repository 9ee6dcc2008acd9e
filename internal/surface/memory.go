package surface

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"ecofly/radar/internal/geo"
	"ecofly/radar/internal/render"
)

var (
	ErrUnknownHandle     = errors.New("unknown handle")
	ErrInvalidCoordinate = errors.New("coordinate outside geographic domain")
)

// Kind is the type of a surface object.
type Kind string

const (
	KindMarker Kind = "marker"
	KindTrail  Kind = "trail"
	KindLine   Kind = "line"
)

// Object is one drawable held by a Memory surface.
type Object struct {
	Handle   render.Handle `json:"handle"`
	Kind     Kind          `json:"kind"`
	Position geo.LatLng    `json:"position,omitempty"`
	Icon     *render.Icon  `json:"icon,omitempty"`
	Points   []geo.LatLng  `json:"points,omitempty"`
	Style    *render.Style `json:"style,omitempty"`
	Version  uint64        `json:"version"`
}

func (o *Object) clone() Object {
	c := *o
	if o.Icon != nil {
		icon := *o.Icon
		c.Icon = &icon
	}
	if o.Style != nil {
		style := *o.Style
		c.Style = &style
	}
	c.Points = append([]geo.LatLng(nil), o.Points...)
	return c
}

// Memory is an in-process rendering surface. It is the authoritative object
// table the presentation API reads from, and is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	objects map[render.Handle]*Object
}

var _ render.Surface = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{objects: make(map[render.Handle]*Object)}
}

func (m *Memory) insert(o *Object) render.Handle {
	o.Handle = render.Handle(uuid.NewString())
	m.mu.Lock()
	m.objects[o.Handle] = o
	m.mu.Unlock()
	return o.Handle
}

// lookup must be called with mu held.
func (m *Memory) lookup(h render.Handle, kind Kind) (*Object, error) {
	o, ok := m.objects[h]
	if !ok || o.Kind != kind {
		return nil, fmt.Errorf("%s %s: %w", kind, h, ErrUnknownHandle)
	}
	return o, nil
}

func (m *Memory) remove(h render.Handle, kind Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(h, kind); err != nil {
		return err
	}
	delete(m.objects, h)
	return nil
}

func validPoints(points []geo.LatLng) error {
	for _, p := range points {
		if !p.Valid() {
			return fmt.Errorf("point %v: %w", p, ErrInvalidCoordinate)
		}
	}
	return nil
}

func (m *Memory) CreateMarker(pos geo.LatLng, icon render.Icon) (render.Handle, error) {
	if !pos.Valid() {
		return "", fmt.Errorf("marker at %v: %w", pos, ErrInvalidCoordinate)
	}
	return m.insert(&Object{Kind: KindMarker, Position: pos, Icon: &icon}), nil
}

func (m *Memory) UpdateMarkerPosition(h render.Handle, pos geo.LatLng) error {
	if !pos.Valid() {
		return fmt.Errorf("marker at %v: %w", pos, ErrInvalidCoordinate)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, err := m.lookup(h, KindMarker)
	if err != nil {
		return err
	}
	o.Position = pos
	o.Version++
	return nil
}

func (m *Memory) UpdateMarkerIcon(h render.Handle, icon render.Icon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, err := m.lookup(h, KindMarker)
	if err != nil {
		return err
	}
	o.Icon = &icon
	o.Version++
	return nil
}

func (m *Memory) RemoveMarker(h render.Handle) error {
	return m.remove(h, KindMarker)
}

func (m *Memory) CreateTrail(points []geo.LatLng, style render.Style) (render.Handle, error) {
	if err := validPoints(points); err != nil {
		return "", err
	}
	return m.insert(&Object{Kind: KindTrail, Points: append([]geo.LatLng(nil), points...), Style: &style}), nil
}

func (m *Memory) UpdateTrail(h render.Handle, points []geo.LatLng) error {
	return m.setPoints(h, KindTrail, points)
}

func (m *Memory) RemoveTrail(h render.Handle) error {
	return m.remove(h, KindTrail)
}

func (m *Memory) CreateLine(points []geo.LatLng, style render.Style) (render.Handle, error) {
	if err := validPoints(points); err != nil {
		return "", err
	}
	return m.insert(&Object{Kind: KindLine, Points: append([]geo.LatLng(nil), points...), Style: &style}), nil
}

func (m *Memory) UpdateLine(h render.Handle, points []geo.LatLng) error {
	return m.setPoints(h, KindLine, points)
}

func (m *Memory) RemoveLine(h render.Handle) error {
	return m.remove(h, KindLine)
}

func (m *Memory) setPoints(h render.Handle, kind Kind, points []geo.LatLng) error {
	if err := validPoints(points); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, err := m.lookup(h, kind)
	if err != nil {
		return err
	}
	// reuse the backing array; trails are rewritten every tick
	o.Points = append(o.Points[:0], points...)
	o.Version++
	return nil
}

// Get returns a copy of the object behind h.
func (m *Memory) Get(h render.Handle) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[h]
	if !ok {
		return Object{}, false
	}
	return o.clone(), true
}

// Objects returns copies of every object, optionally restricted to one kind,
// ordered by kind then handle.
func (m *Memory) Objects(kind Kind) []Object {
	m.mu.RLock()
	out := make([]Object, 0, len(m.objects))
	for _, o := range m.objects {
		if kind != "" && o.Kind != kind {
			continue
		}
		out = append(out, o.clone())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Handle < out[j].Handle
	})
	return out
}

// Counts reports the number of live objects per kind.
func (m *Memory) Counts() map[Kind]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := map[Kind]int{KindMarker: 0, KindTrail: 0, KindLine: 0}
	for _, o := range m.objects {
		counts[o.Kind]++
	}
	return counts
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
