package analysis

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"ecofly/radar/internal/common"
	"ecofly/radar/internal/fleet"
)

const (
	DefaultDelay = 1500 * time.Millisecond

	minSavingPercent  = 8
	savingPercentSpan = 12

	routeCacheTTL = 30 * time.Minute
)

// Result is the outcome of one route analysis.
type Result struct {
	FlightID       string    `json:"flight_id"`
	CurrentTotalKg float64   `json:"current_total_kg"`
	SavingPercent  int       `json:"saving_percent"`
	SavingKg       float64   `json:"saving_kg"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Service produces an analysis for a flight. Implementations must honor ctx
// cancellation; the engine cancels a request when the selection changes.
type Service interface {
	RequestAnalysis(ctx context.Context, f fleet.Flight) (Result, error)
}

// Estimator is the built-in Service. It computes the route total from the
// great-circle leg and proposes a saving after a fixed latency.
type Estimator struct {
	delay time.Duration
	cache common.CacheInterface
	log   *zap.SugaredLogger

	mu  sync.Mutex
	rng *rand.Rand
}

var _ Service = (*Estimator)(nil)

// NewEstimator builds an estimator. cache may be nil. A zero seed uses the clock.
func NewEstimator(delay time.Duration, cache common.CacheInterface, seed int64, log *zap.SugaredLogger) *Estimator {
	if delay < 0 {
		delay = 0
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Estimator{
		delay: delay,
		cache: cache,
		log:   log,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (e *Estimator) RequestAnalysis(ctx context.Context, f fleet.Flight) (Result, error) {
	total, err := e.routeTotal(&f)
	if err != nil {
		return Result{}, err
	}

	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	pct := e.savingPercent()
	return Result{
		FlightID:       f.ID,
		CurrentTotalKg: math.Round(total),
		SavingPercent:  pct,
		SavingKg:       math.Round(total * float64(pct) / 100),
		CompletedAt:    time.Now().UTC(),
	}, nil
}

func (e *Estimator) savingPercent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int(math.Floor(e.rng.Float64()*savingPercentSpan + minSavingPercent))
}

// routeTotal memoizes leg totals; many flights share an airport pair and class.
func (e *Estimator) routeTotal(f *fleet.Flight) (float64, error) {
	if f.Origin == nil || f.Destination == nil {
		return 0, fmt.Errorf("flight %s: %w", f.ID, fleet.ErrMissingField)
	}
	if e.cache == nil {
		return RouteTotalKg(f), nil
	}

	key := fmt.Sprintf("route:%s:%s-%s", f.Class, f.Origin.IATA, f.Destination.IATA)
	val, err := e.cache.GetOrSet(key, routeCacheTTL, func() (any, error) {
		return RouteTotalKg(f), nil
	})
	if err != nil {
		return 0, err
	}
	total, ok := val.(float64)
	if !ok {
		e.log.Warnw("unexpected route cache value", "key", key, "type", fmt.Sprintf("%T", val))
		return RouteTotalKg(f), nil
	}
	return total, nil
}
