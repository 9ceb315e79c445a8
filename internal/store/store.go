// Package store holds the process-wide state containers for the map
// session: active filters and the live viewport. Any component may read
// them; mutation goes through the setters so invariants and change
// notification stay intact. Writers are just separate event handlers, so
// last-write-wins ordering is all that is required.
package store

import (
	"sync"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/filter"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/util"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Listener is invoked after a store's state changes. Listeners run on the
// mutating goroutine, outside the store lock.
type Listener func()

// FilterStore is the observable container for the active filter state.
type FilterStore struct {
	mu    sync.RWMutex
	state filter.State
	subs  []Listener
}

// NewFilterStore creates a FilterStore with no active filters.
func NewFilterStore() *FilterStore {
	return &FilterStore{}
}

// Get returns a copy of the current filter state.
func (s *FilterStore) Get() filter.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a change listener.
func (s *FilterStore) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, l)
}

// SetDay toggles a weekday filter.
func (s *FilterStore) SetDay(d core.Weekday, on bool) {
	s.mutate(func(st *filter.State) { st.SetDay(d, on) })
}

// SetType toggles a workout type filter. Single-select: activating one
// clears the others.
func (s *FilterStore) SetType(t core.EventType, on bool) {
	s.mutate(func(st *filter.State) { st.SetType(t, on) })
}

// SetCategory toggles an event category filter, single-select like SetType.
func (s *FilterStore) SetCategory(c core.Category, on bool) {
	s.mutate(func(st *filter.State) { st.SetCategory(c, on) })
}

// SetTimeFilter sets the before/after boundary from an "HH:mm" string.
// TimeNone clears the boundary regardless of the clock value.
func (s *FilterStore) SetTimeFilter(mode filter.TimeMode, clock string) error {
	if mode == filter.TimeNone {
		s.mutate(func(st *filter.State) {
			st.TimeMode = filter.TimeNone
			st.Boundary = 0
		})
		return nil
	}
	boundary, err := util.MinutesOfDay(clock)
	if err != nil {
		return err
	}
	s.mutate(func(st *filter.State) {
		st.TimeMode = mode
		st.Boundary = boundary
	})
	return nil
}

// SetExpanded records the "show all filters" UI flag. No matching effect,
// but observers still need to re-render.
func (s *FilterStore) SetExpanded(expanded bool) {
	s.mutate(func(st *filter.State) { st.Expanded = expanded })
}

// Reset clears every filter back to the default (all off).
func (s *FilterStore) Reset() {
	s.mutate(func(st *filter.State) { *st = filter.State{} })
}

func (s *FilterStore) mutate(fn func(*filter.State)) {
	s.mu.Lock()
	fn(&s.state)
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, l := range subs {
		l()
	}
}

// ViewStore is the observable container for the live map viewport.
type ViewStore struct {
	mu   sync.RWMutex
	view core.MapView
	subs []Listener
}

// NewViewStore creates a ViewStore with no resolved center.
func NewViewStore() *ViewStore {
	return &ViewStore{}
}

// Get returns a copy of the current viewport state.
func (s *ViewStore) Get() core.MapView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Subscribe registers a change listener.
func (s *ViewStore) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, l)
}

// Zoom levels supported by the map widget's Web Mercator tiles.
const (
	minZoom = 1
	maxZoom = 22
)

// Seed sets the initial center and zoom before any viewport events arrive.
// Bounds stay unknown until the map widget reports them.
func (s *ViewStore) Seed(center core.LatLng, zoom float64) {
	s.mutate(func(v *core.MapView) {
		c := center
		v.Center = &c
		v.Zoom = util.Clamp(zoom, minZoom, maxZoom)
		v.Interaction = core.Idle
	})
}

// Update applies a viewport event from the map widget.
func (s *ViewStore) Update(center core.LatLng, zoom float64, bounds core.Bounds, interaction core.Interaction) {
	s.mutate(func(v *core.MapView) {
		c := center
		b := bounds
		v.Center = &c
		v.Zoom = util.Clamp(zoom, minZoom, maxZoom)
		v.Bounds = &b
		v.Interaction = interaction
	})
}

func (s *ViewStore) mutate(fn func(*core.MapView)) {
	s.mu.Lock()
	fn(&s.view)
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, l := range subs {
		l()
	}
}
