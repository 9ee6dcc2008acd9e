package engine

import (
	"context"
	"time"

	"github.com/brunoga/deep"

	"ecofly/radar/internal/analysis"
	"ecofly/radar/internal/fleet"
	"ecofly/radar/internal/render"
	"ecofly/radar/internal/view"
)

// Snapshot is an immutable copy of the presentation state, published after
// every cycle that changed it. Readers never share memory with the loop.
type Snapshot struct {
	Tick       uint64              `json:"tick"`
	Generation uint64              `json:"generation"`
	At         time.Time           `json:"at"`
	Total      int                 `json:"total"`
	Visible    []fleet.Flight      `json:"visible"`
	Selected   *fleet.Flight       `json:"selected,omitempty"`
	Emissions  *analysis.Emissions `json:"emissions,omitempty"`
	Analysis   *analysis.Result    `json:"analysis,omitempty"`
	Analyzing  bool                `json:"analyzing"`
	Criteria   view.Criteria       `json:"criteria"`
	Search     string              `json:"search"`
	Overlay    render.OverlayState `json:"overlay"`
	Render     render.Stats        `json:"render"`
	Skipped    uint64              `json:"skipped_ticks"`
}

// Find returns the visible or selected flight with the given id.
func (s *Snapshot) Find(id string) (*fleet.Flight, bool) {
	if s.Selected != nil && s.Selected.ID == id {
		return s.Selected, true
	}
	for i := range s.Visible {
		if s.Visible[i].ID == id {
			return &s.Visible[i], true
		}
	}
	return nil, false
}

// Snapshot returns the latest published state. It never blocks.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// Lookup copies any flight in the store, visible or not.
func (e *Engine) Lookup(ctx context.Context, id string) (fleet.Flight, bool, error) {
	var (
		out   fleet.Flight
		found bool
	)
	err := e.do(ctx, func() {
		if f, ok := e.store.Get(id); ok {
			out, found = deep.MustCopy(*f), true
		}
	})
	return out, found, err
}

func (e *Engine) publish(now time.Time) {
	vals := make([]fleet.Flight, len(e.visible))
	for i, f := range e.visible {
		vals[i] = *f
	}

	s := &Snapshot{
		Tick:       e.ticks.Ticks(),
		Generation: e.store.Generation(),
		At:         now,
		Total:      e.store.Len(),
		Visible:    deep.MustCopy(vals),
		Analyzing:  e.pending != nil,
		Criteria:   e.criteria,
		Search:     e.search,
		Overlay:    e.overlay.State(),
		Render:     e.lastRender,
		Skipped:    e.skipped,
	}
	if f, ok := e.store.Get(e.selectedID); ok && e.selectedID != "" {
		sel := deep.MustCopy(*f)
		s.Selected = &sel
		em := analysis.EmittedSoFar(f)
		s.Emissions = &em
	}
	if e.result != nil {
		res := *e.result
		s.Analysis = &res
	}
	e.snap.Store(s)
}

func (e *Engine) startAnalysis(f fleet.Flight) {
	e.seq++
	seq := e.seq

	parent := e.runCtx
	if parent == nil {
		parent = context.Background()
	}
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if e.opts.AnalysisTimeout > 0 {
		ctx, cancel = context.WithTimeout(parent, e.opts.AnalysisTimeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	e.pending = &pendingAnalysis{seq: seq, id: f.ID, cancel: cancel}
	e.log.Debugw("analysis requested", "flight_id", f.ID, "seq", seq)

	go func() {
		start := time.Now()
		res, err := e.analyzer.RequestAnalysis(ctx, f)
		out := outcome{seq: seq, id: f.ID, result: res, err: err, elapsed: time.Since(start)}
		select {
		case e.results <- out:
		case <-e.done:
		}
	}()
}
