package engine

import (
	"context"
	"errors"
	"time"

	"github.com/brunoga/deep"

	"ecofly/radar/internal/view"
)

// SelectFlight makes id the selected flight. An empty or unknown id clears
// the selection. Changing the selection discards any analysis result and
// cancels an analysis still in flight.
func (e *Engine) SelectFlight(ctx context.Context, id string) error {
	return e.do(ctx, func() {
		if _, ok := e.store.Get(id); !ok {
			if id != "" {
				e.log.Debugw("select of unknown flight clears selection", "flight_id", id)
			}
			id = ""
		}
		if id == e.selectedID {
			return
		}
		e.cancelPending()
		e.result = nil
		e.selectedID = id
		e.refresh(time.Now())
	})
}

// SetFilters replaces the filter criteria. Out-of-domain criteria are ignored.
func (e *Engine) SetFilters(ctx context.Context, c view.Criteria) error {
	return e.do(ctx, func() {
		if !c.Valid(e.cat.Operators) {
			e.log.Debugw("ignoring invalid filter criteria", "criteria", c)
			return
		}
		c = c.Normalize()
		if c == e.criteria {
			return
		}
		e.criteria = c
		e.refresh(time.Now())
	})
}

// ResetFilters restores the match-everything criteria.
func (e *Engine) ResetFilters(ctx context.Context) error {
	return e.SetFilters(ctx, view.DefaultCriteria())
}

func (e *Engine) SetSearchText(ctx context.Context, text string) error {
	return e.do(ctx, func() {
		if text == e.search {
			return
		}
		e.search = text
		e.refresh(time.Now())
	})
}

// RequestAnalyze starts an analysis for the selected flight. Requests for any
// other id, or while one is already running, are ignored.
func (e *Engine) RequestAnalyze(ctx context.Context, id string) error {
	return e.do(ctx, func() {
		if id == "" || id != e.selectedID {
			e.log.Debugw("ignoring analysis request for unselected flight", "flight_id", id, "selected", e.selectedID)
			return
		}
		if e.pending != nil {
			return
		}
		f, ok := e.store.Get(id)
		if !ok {
			return
		}
		e.startAnalysis(deep.MustCopy(*f))
		e.publish(time.Now())
	})
}

func (e *Engine) cancelPending() {
	if e.pending == nil {
		return
	}
	e.pending.cancel()
	e.pending = nil
}

func (e *Engine) applyAnalysis(out outcome) {
	if e.pending == nil || out.seq != e.pending.seq {
		// superseded by a selection change; the new selection must not see it
		e.record("stale")
		e.log.Debugw("discarding stale analysis", "flight_id", out.id, "seq", out.seq)
		return
	}
	e.pending.cancel()
	e.pending = nil

	if out.err != nil {
		if errors.Is(out.err, context.Canceled) || errors.Is(out.err, context.DeadlineExceeded) {
			e.record("cancelled")
		} else {
			e.record("failed")
		}
		e.log.Warnw("analysis failed", "flight_id", out.id, "error", out.err)
		e.publish(time.Now())
		return
	}

	res := out.result
	e.result = &res
	e.record("completed")
	if m := e.opts.Metrics; m != nil {
		m.AnalysisDuration.Observe(out.elapsed.Seconds())
	}
	e.refresh(time.Now())
}

func (e *Engine) record(result string) {
	if m := e.opts.Metrics; m != nil {
		m.AnalysisRequestsTotal.WithLabelValues(result).Inc()
	}
}
