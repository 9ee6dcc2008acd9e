package render

import (
	"go.uber.org/zap"

	"ecofly/radar/internal/fleet"
)

// markerEntry is the render state kept per visible flight.
type markerEntry struct {
	marker   Handle
	trail    Handle
	selected bool
}

// Stats counts what one reconciliation did.
type Stats struct {
	Visible        int
	Created        int
	Updated        int
	Removed        int
	IconsRefreshed int
	Failed         int
}

// Reconciler diffs the visible flight set against the objects it previously
// placed on the surface and issues the minimal create/update/remove calls.
// It is the only component that touches per-flight markers and trails.
type Reconciler struct {
	surface Surface
	icons   *IconFactory
	entries map[string]*markerEntry
	log     *zap.SugaredLogger
}

func NewReconciler(surface Surface, icons *IconFactory, log *zap.SugaredLogger) *Reconciler {
	if icons == nil {
		icons = NewIconFactory(0, 0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reconciler{
		surface: surface,
		icons:   icons,
		entries: make(map[string]*markerEntry),
		log:     log,
	}
}

// Reconcile brings the surface in line with visible. selectedID may be empty.
func (r *Reconciler) Reconcile(visible []*fleet.Flight, selectedID string) Stats {
	st := Stats{Visible: len(visible)}

	keep := make(map[string]struct{}, len(visible))
	for _, f := range visible {
		keep[f.ID] = struct{}{}
	}

	// Removals first so the surface never holds more than one cycle's worth of objects.
	for id, e := range r.entries {
		if _, ok := keep[id]; ok {
			continue
		}
		if r.release(id, e) {
			st.Removed++
		} else {
			st.Failed++
		}
	}

	for _, f := range visible {
		selected := f.ID == selectedID
		e, ok := r.entries[f.ID]
		if !ok {
			if r.create(f, selected) {
				st.Created++
			} else {
				st.Failed++
			}
			continue
		}

		refreshed, err := r.update(f, e, selected)
		if err != nil {
			st.Failed++
			continue
		}
		st.Updated++
		if refreshed {
			st.IconsRefreshed++
		}
	}
	return st
}

func (r *Reconciler) create(f *fleet.Flight, selected bool) bool {
	marker, err := r.surface.CreateMarker(f.Position, r.icons.Create(f, selected))
	if err != nil {
		r.log.Warnw("create marker failed", "flight_id", f.ID, "op", "create_marker", "error", err)
		return false
	}
	trail, err := r.surface.CreateTrail(f.History, trailStyle(f))
	if err != nil {
		r.log.Warnw("create trail failed", "flight_id", f.ID, "op", "create_trail", "error", err)
		// Roll back so the next cycle retries the whole entity.
		if rmErr := r.surface.RemoveMarker(marker); rmErr != nil {
			r.log.Warnw("rollback marker failed", "flight_id", f.ID, "op", "remove_marker", "error", rmErr)
			r.entries[f.ID] = &markerEntry{marker: marker, selected: selected}
		}
		return false
	}
	r.entries[f.ID] = &markerEntry{marker: marker, trail: trail, selected: selected}
	return true
}

// update repositions an existing marker and trail. The icon is regenerated
// only when the selection state changed since the last cycle.
func (r *Reconciler) update(f *fleet.Flight, e *markerEntry, selected bool) (bool, error) {
	if e.marker == "" {
		// left over from a partially failed release
		marker, err := r.surface.CreateMarker(f.Position, r.icons.Create(f, selected))
		if err != nil {
			r.log.Warnw("create marker failed", "flight_id", f.ID, "op", "create_marker", "error", err)
			return false, err
		}
		e.marker, e.selected = marker, selected
	} else if err := r.surface.UpdateMarkerPosition(e.marker, f.Position); err != nil {
		r.log.Warnw("update marker failed", "flight_id", f.ID, "op", "update_marker_position", "error", err)
		return false, err
	}

	if e.trail == "" {
		trail, err := r.surface.CreateTrail(f.History, trailStyle(f))
		if err != nil {
			r.log.Warnw("create trail failed", "flight_id", f.ID, "op", "create_trail", "error", err)
			return false, err
		}
		e.trail = trail
	} else if err := r.surface.UpdateTrail(e.trail, f.History); err != nil {
		r.log.Warnw("update trail failed", "flight_id", f.ID, "op", "update_trail", "error", err)
		return false, err
	}

	if e.selected == selected {
		return false, nil
	}
	if err := r.surface.UpdateMarkerIcon(e.marker, r.icons.Create(f, selected)); err != nil {
		// selection state stays stale so the refresh is retried next cycle
		r.log.Warnw("update icon failed", "flight_id", f.ID, "op", "update_marker_icon", "error", err)
		return false, err
	}
	e.selected = selected
	return true, nil
}

// release removes both objects of an entry. Handles that fail to release are
// kept so the next cycle retries them.
func (r *Reconciler) release(id string, e *markerEntry) bool {
	ok := true
	if e.marker != "" {
		if err := r.surface.RemoveMarker(e.marker); err != nil {
			r.log.Warnw("remove marker failed", "flight_id", id, "op", "remove_marker", "error", err)
			ok = false
		} else {
			e.marker = ""
		}
	}
	if e.trail != "" {
		if err := r.surface.RemoveTrail(e.trail); err != nil {
			r.log.Warnw("remove trail failed", "flight_id", id, "op", "remove_trail", "error", err)
			ok = false
		} else {
			e.trail = ""
		}
	}
	if ok {
		delete(r.entries, id)
	}
	return ok
}

// Clear releases every object the reconciler owns.
func (r *Reconciler) Clear() int {
	n := 0
	for id, e := range r.entries {
		if r.release(id, e) {
			n++
		}
	}
	return n
}

// Len is the number of flights with live render objects.
func (r *Reconciler) Len() int {
	return len(r.entries)
}

// Handles returns the marker and trail handles held for id.
func (r *Reconciler) Handles(id string) (marker, trail Handle, ok bool) {
	e, ok := r.entries[id]
	if !ok {
		return "", "", false
	}
	return e.marker, e.trail, true
}

func trailStyle(f *fleet.Flight) Style {
	if f.Operator == nil {
		return TrailStyle("")
	}
	return TrailStyle(f.Operator.Color)
}
