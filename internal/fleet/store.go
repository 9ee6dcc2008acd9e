package fleet

import (
	"fmt"

	"ecofly/radar/internal/geo"
)

// PolarLimit is the absolute latitude flights are kept within.
const PolarLimit = 85.0

// Store is the authoritative flight collection. Flights live in a fixed arena
// indexed by slot; the fleet size never changes during a session, so slots
// and pointers stay stable for the store's lifetime.
//
// Store is not safe for concurrent use. It is owned by the engine loop.
type Store struct {
	flights    []Flight
	slots      map[string]int
	generation uint64
}

// NewStore validates flights and takes ownership of them. Initial positions
// are normalized into the polar band and longitude domain.
func NewStore(flights []Flight) (*Store, error) {
	s := &Store{
		flights: make([]Flight, len(flights)),
		slots:   make(map[string]int, len(flights)),
	}
	for i := range flights {
		f := flights[i]
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.slots[f.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, f.ID)
		}
		f.Position = normalize(f.Position)
		f.Heading = geo.NormalizeHeading(f.Heading)
		f.History = append(make([]geo.LatLng, 0, HistoryCap+1), f.History...)
		s.flights[i] = f
		s.slots[f.ID] = i
	}
	return s, nil
}

func normalize(p geo.LatLng) geo.LatLng {
	p.Lat = ClampLatitude(p.Lat)
	p.Lng = geo.WrapLongitude(p.Lng)
	return p
}

// ClampLatitude pins lat into [-PolarLimit, PolarLimit].
func ClampLatitude(lat float64) float64 {
	if lat > PolarLimit {
		return PolarLimit
	}
	if lat < -PolarLimit {
		return -PolarLimit
	}
	return lat
}

func (s *Store) Len() int {
	return len(s.flights)
}

// Get returns the flight with the given id.
func (s *Store) Get(id string) (*Flight, bool) {
	i, ok := s.slots[id]
	if !ok {
		return nil, false
	}
	return &s.flights[i], true
}

// Slot returns the flight at arena index i.
func (s *Store) Slot(i int) *Flight {
	return &s.flights[i]
}

// All returns pointers to every flight in slot order.
func (s *Store) All() []*Flight {
	out := make([]*Flight, len(s.flights))
	for i := range s.flights {
		out[i] = &s.flights[i]
	}
	return out
}

// Each calls fn for every flight in slot order.
func (s *Store) Each(fn func(*Flight)) {
	for i := range s.flights {
		fn(&s.flights[i])
	}
}

// Generation counts completed mutation passes.
func (s *Store) Generation() uint64 {
	return s.generation
}

// Advance marks the end of a mutation pass.
func (s *Store) Advance() uint64 {
	s.generation++
	return s.generation
}
