package sim

import (
	"math"
	"time"

	"go.uber.org/zap"

	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/geo"
)

const (
	// DefaultInterval is the wall-clock period between ticks.
	DefaultInterval = time.Second
	// DefaultDistanceScale converts knots into degrees moved per tick.
	DefaultDistanceScale = 0.2
)

// Stats summarizes one tick.
type Stats struct {
	Tick       uint64
	Flights    int
	Bounces    int
	Wraps      int
	Duration   time.Duration
	Generation uint64
}

// TickEngine advances every flight in a store once per tick. It is the only
// writer of flight kinematics.
type TickEngine struct {
	store *fleet.Store
	scale float64
	ticks uint64
	log   *zap.SugaredLogger
}

// NewTickEngine creates a tick engine over store. A non-positive scale selects
// DefaultDistanceScale.
func NewTickEngine(store *fleet.Store, scale float64, log *zap.SugaredLogger) *TickEngine {
	if scale <= 0 {
		scale = DefaultDistanceScale
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TickEngine{store: store, scale: scale, log: log}
}

// Tick performs one synchronous pass over the whole store.
func (e *TickEngine) Tick() Stats {
	start := time.Now()
	st := Stats{Flights: e.store.Len()}
	e.store.Each(func(f *fleet.Flight) {
		bounced, wrapped := Advance(f, e.scale)
		if bounced {
			st.Bounces++
		}
		if wrapped {
			st.Wraps++
		}
	})
	e.ticks++
	st.Tick = e.ticks
	st.Generation = e.store.Advance()
	st.Duration = time.Since(start)
	if st.Bounces > 0 {
		e.log.Debugw("pole bounce", "tick", st.Tick, "count", st.Bounces)
	}
	return st
}

func (e *TickEngine) Ticks() uint64 {
	return e.ticks
}

// Advance moves f one tick along its heading using a flat-plane step:
// dLat = cos(h)*d, dLng = sin(h)*d with d = speed/3600*scale and h measured
// clockwise from north. Crossing the polar band flips the heading for
// subsequent ticks. The step still applies, but its latitude is held at the
// band edge so positions never leave [-85,85]; longitude moves as usual.
func Advance(f *fleet.Flight, scale float64) (bounced, wrapped bool) {
	rad := geo.Radians(f.Heading)
	dist := (f.SpeedKt / 3600) * scale

	lat := f.Position.Lat + math.Cos(rad)*dist
	lng := f.Position.Lng + math.Sin(rad)*dist

	if lat > fleet.PolarLimit || lat < -fleet.PolarLimit {
		f.Heading = geo.OppositeHeading(f.Heading)
		lat = fleet.ClampLatitude(lat)
		bounced = true
	}

	wrapped = lng > 180 || lng <= -180
	lng = geo.WrapLongitude(lng)

	f.Position = geo.LatLng{Lat: lat, Lng: lng}
	f.AppendHistory(f.Position)
	return bounced, wrapped
}
