// Package filter implements the pure marker/event filter applied to the
// directory before distance ranking.
package filter

import (
	"github.com/F3-Nation/f3-nation-map-sub001/internal/util"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// TimeMode selects the direction of the time-of-day comparison.
type TimeMode int

const (
	// TimeNone disables the time-of-day filter.
	TimeNone TimeMode = iota
	// TimeBefore keeps events starting at or before the boundary.
	TimeBefore
	// TimeAfter keeps events starting at or after the boundary.
	TimeAfter
)

// State is the flat record of active filter toggles. The zero value means
// no filtering. Toggle fields are fixed-size arrays keyed by the closed
// enums in pkg/core rather than dynamic maps, so every weekday and type is
// accounted for.
type State struct {
	Days       [core.NumWeekdays]bool
	Types      [core.NumEventTypes]bool
	Categories [core.NumCategories]bool

	TimeMode TimeMode
	// Boundary is minutes since midnight, only meaningful when TimeMode
	// is not TimeNone.
	Boundary int

	// Expanded is the "show all filters" UI flag. It has no effect on
	// matching.
	Expanded bool
}

// Empty reports whether the state applies no filtering at all.
func (s State) Empty() bool {
	for _, on := range s.Days {
		if on {
			return false
		}
	}
	for _, on := range s.Types {
		if on {
			return false
		}
	}
	for _, on := range s.Categories {
		if on {
			return false
		}
	}
	return s.TimeMode == TimeNone
}

// SetType activates or deactivates a workout type toggle. The workout type
// filter is single-select: activating one clears the other three.
func (s *State) SetType(t core.EventType, on bool) {
	if !t.Valid() {
		return
	}
	if on {
		s.Types = [core.NumEventTypes]bool{}
	}
	s.Types[t] = on
}

// SetCategory activates or deactivates a category toggle, clearing the
// other categories when activating. Same single-select rule as SetType.
func (s *State) SetCategory(c core.Category, on bool) {
	if !c.Valid() {
		return
	}
	if on {
		s.Categories = [core.NumCategories]bool{}
	}
	s.Categories[c] = on
}

// SetDay activates or deactivates a weekday toggle. Days are multi-select.
func (s *State) SetDay(d core.Weekday, on bool) {
	if !d.Valid() {
		return
	}
	s.Days[d] = on
}

func (s State) anyDay() bool {
	for _, on := range s.Days {
		if on {
			return true
		}
	}
	return false
}

func (s State) activeType() (core.EventType, bool) {
	for i, on := range s.Types {
		if on {
			return core.EventType(i), true
		}
	}
	return 0, false
}

func (s State) activeCategory() (core.Category, bool) {
	for i, on := range s.Categories {
		if on {
			return core.Category(i), true
		}
	}
	return 0, false
}

// matches reports whether a single event survives the active filters.
func (s State) matches(e core.Event) bool {
	if s.anyDay() {
		if e.Day == nil || !e.Day.Valid() || !s.Days[*e.Day] {
			return false
		}
	}

	if want, ok := s.activeType(); ok {
		if !containsType(e.Types, want) {
			return false
		}
	}

	if want, ok := s.activeCategory(); ok {
		if !containsCategory(e.Categories, want) {
			return false
		}
	}

	if s.TimeMode != TimeNone {
		start, err := util.MinutesOfDay(e.StartTime)
		if err != nil {
			// Events with no usable start time cannot match an active
			// time filter.
			return false
		}
		switch s.TimeMode {
		case TimeBefore:
			if start > s.Boundary {
				return false
			}
		case TimeAfter:
			if start < s.Boundary {
				return false
			}
		}
	}

	return true
}

func containsType(types []core.EventType, want core.EventType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func containsCategory(cats []core.Category, want core.Category) bool {
	for _, c := range cats {
		if c == want {
			return true
		}
	}
	return false
}

// Apply filters markers by the active state. A marker survives if at least
// one of its events survives; survivors carry only their surviving events.
// The input is never mutated and relative order is preserved. An empty
// state returns the input unchanged.
func Apply(markers []core.LocationMarker, s State) []core.LocationMarker {
	if s.Empty() {
		return markers
	}

	out := make([]core.LocationMarker, 0, len(markers))
	for _, m := range markers {
		var kept []core.Event
		for _, e := range m.Events {
			if s.matches(e) {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered := m
		filtered.Events = kept
		out = append(out, filtered)
	}
	return out
}
