package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ecofly/radar/internal/analysis"
	"ecofly/radar/internal/catalog"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/metrics"
	"ecofly/radar/internal/render"
	"ecofly/radar/internal/sim"
	"ecofly/radar/internal/view"
)

// ErrStopped is returned by mutation methods once Run has returned.
var ErrStopped = errors.New("engine stopped")

const flushTimeout = 2 * time.Second

// Options tunes an Engine. Zero values select defaults.
type Options struct {
	Interval        time.Duration
	DistanceScale   float64
	AnalysisTimeout time.Duration
	Metrics         *metrics.MetricsRegistry
	Log             *zap.SugaredLogger
}

type command struct {
	apply func()
	done  chan struct{}
}

type outcome struct {
	seq     uint64
	id      string
	result  analysis.Result
	err     error
	elapsed time.Duration
}

type pendingAnalysis struct {
	seq    uint64
	id     string
	cancel context.CancelFunc
}

// Engine owns the entity store, the render handle tables and the selection
// state. Everything mutable is touched only by the goroutine running Run;
// other goroutines talk to it through commands and read published snapshots.
type Engine struct {
	store      *fleet.Store
	cat        *catalog.Catalog
	surface    render.Surface
	ticks      *sim.TickEngine
	reconciler *render.Reconciler
	overlay    *render.OverlayManager
	analyzer   analysis.Service
	opts       Options
	log        *zap.SugaredLogger

	cmds    chan command
	results chan outcome
	done    chan struct{}
	started atomic.Bool
	snap    atomic.Pointer[Snapshot]

	// tickSource is swapped in tests to drive ticks by hand.
	tickSource func(time.Duration) (<-chan time.Time, func())

	// loop-owned
	runCtx     context.Context
	criteria   view.Criteria
	search     string
	selectedID string
	result     *analysis.Result
	pending    *pendingAnalysis
	seq        uint64
	visible    []*fleet.Flight
	lastRender render.Stats
	lastTickAt time.Time
	skipped    uint64
}

// New wires an engine. The surface is owned by the caller; the engine is its
// only writer while Run is active.
func New(store *fleet.Store, cat *catalog.Catalog, surface render.Surface, analyzer analysis.Service, opts Options) *Engine {
	if opts.Interval <= 0 {
		opts.Interval = sim.DefaultInterval
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	e := &Engine{
		store:      store,
		cat:        cat,
		surface:    surface,
		ticks:      sim.NewTickEngine(store, opts.DistanceScale, log.Named("sim")),
		reconciler: render.NewReconciler(surface, render.NewIconFactory(0, 0), log.Named("reconcile")),
		overlay:    render.NewOverlayManager(surface, log.Named("overlay")),
		analyzer:   analyzer,
		opts:       opts,
		log:        log,
		cmds:       make(chan command),
		results:    make(chan outcome, 1),
		done:       make(chan struct{}),
		tickSource: realTicker,
		criteria:   view.DefaultCriteria(),
	}
	e.publish(time.Now())
	return e
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Run drives the engine until ctx ends. It renders the initial view, then
// serves ticks, commands and analysis results. On return every render object
// the engine created has been released.
func (e *Engine) Run(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return errors.New("engine already running")
	}
	defer close(e.done)
	e.runCtx = ctx

	tickC, stop := e.tickSource(e.opts.Interval)
	defer stop()

	e.lastTickAt = time.Now()
	e.refresh(e.lastTickAt)
	e.log.Infow("engine started", "flights", e.store.Len(), "interval", e.opts.Interval)

	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			return nil
		case now := <-tickC:
			e.tick(now)
		case cmd := <-e.cmds:
			cmd.apply()
			close(cmd.done)
		case out := <-e.results:
			e.applyAnalysis(out)
		}
	}
}

// Done is closed when Run returns.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) tick(now time.Time) {
	// time.Ticker drops ticks for slow receivers; count what was dropped
	if gap := now.Sub(e.lastTickAt); gap > e.opts.Interval*3/2 {
		missed := uint64(gap/e.opts.Interval) - 1
		if missed > 0 {
			e.skipped += missed
			if m := e.opts.Metrics; m != nil {
				m.TicksSkippedTotal.Add(float64(missed))
			}
			e.log.Warnw("ticks skipped", "missed", missed, "gap", gap)
		}
	}
	e.lastTickAt = now

	st := e.ticks.Tick()
	if m := e.opts.Metrics; m != nil {
		m.TicksTotal.Inc()
		m.TickDuration.Observe(st.Duration.Seconds())
		m.FlightsTotal.Set(float64(st.Flights))
	}
	e.refresh(now)
}

// refresh recomputes the visible set and brings the surface in line with it.
func (e *Engine) refresh(now time.Time) {
	start := time.Now()
	e.visible = view.Visible(e.store.All(), e.criteria, e.search)
	e.lastRender = e.reconciler.Reconcile(e.visible, e.selectedID)

	var selected *fleet.Flight
	if e.selectedID != "" {
		selected, _ = e.store.Get(e.selectedID)
	}
	e.overlay.Sync(selected, e.result != nil)
	e.flush()

	if m := e.opts.Metrics; m != nil {
		m.ReconcileDuration.Observe(time.Since(start).Seconds())
		m.FlightsVisible.Set(float64(len(e.visible)))
		st := e.lastRender
		m.RenderOpsTotal.WithLabelValues("created").Add(float64(st.Created))
		m.RenderOpsTotal.WithLabelValues("updated").Add(float64(st.Updated))
		m.RenderOpsTotal.WithLabelValues("removed").Add(float64(st.Removed))
		m.RenderOpsTotal.WithLabelValues("icon_refreshed").Add(float64(st.IconsRefreshed))
		m.RenderOpsTotal.WithLabelValues("failed").Add(float64(st.Failed))
	}
	e.publish(now)
}

func (e *Engine) flush() {
	f, ok := e.surface.(render.Flusher)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := f.Flush(ctx); err != nil {
		if m := e.opts.Metrics; m != nil {
			m.SurfaceFlushFailures.Inc()
		}
		e.log.Warnw("surface flush failed", "error", err)
	}
}

func (e *Engine) shutdown() {
	e.cancelPending()
	e.selectedID, e.result = "", nil
	e.overlay.Clear()
	released := e.reconciler.Clear()
	e.flush()
	e.log.Infow("engine stopped", "released", released, "ticks", e.ticks.Ticks(), "skipped", e.skipped)
}

// do runs fn on the loop goroutine and waits for it.
func (e *Engine) do(ctx context.Context, fn func()) error {
	cmd := command{apply: fn, done: make(chan struct{})}
	select {
	case e.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrStopped
	}
	select {
	case <-cmd.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrStopped
	}
}
