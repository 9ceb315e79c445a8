package store

import (
	"testing"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/filter"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

func TestFilterStore_NotifiesOnChange(t *testing.T) {
	s := NewFilterStore()

	notified := 0
	s.Subscribe(func() { notified++ })

	s.SetDay(core.Monday, true)
	s.SetType(core.Run, true)

	if notified != 2 {
		t.Errorf("expected 2 notifications, got %d", notified)
	}
	st := s.Get()
	if !st.Days[core.Monday] {
		t.Error("Monday toggle not set")
	}
	if !st.Types[core.Run] {
		t.Error("Run toggle not set")
	}
}

func TestFilterStore_TypeSingleSelect(t *testing.T) {
	s := NewFilterStore()

	s.SetType(core.Bootcamp, true)
	s.SetType(core.Run, true)

	st := s.Get()
	want := [core.NumEventTypes]bool{}
	want[core.Run] = true
	if st.Types != want {
		t.Errorf("Types = %v, want {Run: true, Bootcamp: false, Ruck: false, Swim: false}", st.Types)
	}
}

func TestFilterStore_TimeFilter(t *testing.T) {
	s := NewFilterStore()

	if err := s.SetTimeFilter(filter.TimeAfter, "06:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := s.Get()
	if st.TimeMode != filter.TimeAfter || st.Boundary != 360 {
		t.Errorf("got mode=%v boundary=%d, want TimeAfter/360", st.TimeMode, st.Boundary)
	}

	if err := s.SetTimeFilter(filter.TimeBefore, "not-a-clock"); err == nil {
		t.Error("expected error for invalid clock")
	}

	if err := s.SetTimeFilter(filter.TimeNone, ""); err != nil {
		t.Fatalf("unexpected error clearing filter: %v", err)
	}
	if st = s.Get(); st.TimeMode != filter.TimeNone || st.Boundary != 0 {
		t.Errorf("time filter not cleared: %+v", st)
	}
}

func TestFilterStore_Reset(t *testing.T) {
	s := NewFilterStore()
	s.SetDay(core.Saturday, true)
	s.SetCategory(core.FirstF, true)

	s.Reset()

	if !s.Get().Empty() {
		t.Errorf("state not empty after reset: %+v", s.Get())
	}
}

func TestViewStore_SeedAndUpdate(t *testing.T) {
	s := NewViewStore()

	if s.Get().Center != nil {
		t.Fatal("fresh store should have no center")
	}

	notified := 0
	s.Subscribe(func() { notified++ })

	s.Seed(core.LatLng{Lat: 36.20, Lng: -81.68}, 12)
	v := s.Get()
	if v.Center == nil || v.Center.Lat != 36.20 || v.Zoom != 12 {
		t.Errorf("seed not applied: %+v", v)
	}
	if v.Bounds != nil {
		t.Error("seed should not invent bounds")
	}

	bounds := core.Bounds{
		SouthWest: core.LatLng{Lat: 36.1, Lng: -81.8},
		NorthEast: core.LatLng{Lat: 36.3, Lng: -81.6},
	}
	s.Update(core.LatLng{Lat: 36.21, Lng: -81.69}, 13, bounds, core.Drag)
	v = s.Get()
	if v.Bounds == nil || v.Interaction != core.Drag || v.Zoom != 13 {
		t.Errorf("update not applied: %+v", v)
	}

	if notified != 2 {
		t.Errorf("expected 2 notifications, got %d", notified)
	}
}

func TestViewStore_ClampsZoom(t *testing.T) {
	s := NewViewStore()

	s.Seed(core.LatLng{Lat: 36.20, Lng: -81.68}, -3)
	if got := s.Get().Zoom; got != 1 {
		t.Errorf("seed zoom: expected clamp to 1, got %v", got)
	}

	bounds := core.Bounds{
		SouthWest: core.LatLng{Lat: 36.1, Lng: -81.8},
		NorthEast: core.LatLng{Lat: 36.3, Lng: -81.6},
	}
	s.Update(core.LatLng{Lat: 36.21, Lng: -81.69}, 40, bounds, core.Zoom)
	if got := s.Get().Zoom; got != 22 {
		t.Errorf("update zoom: expected clamp to 22, got %v", got)
	}
}

func TestViewStore_GetReturnsCopy(t *testing.T) {
	s := NewViewStore()
	s.Seed(core.LatLng{Lat: 1, Lng: 2}, 10)

	v := s.Get()
	v.Zoom = 99

	if s.Get().Zoom != 10 {
		t.Error("mutating the returned view leaked into the store")
	}
}
