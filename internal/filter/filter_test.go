package filter

import (
	"testing"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

func day(d core.Weekday) *core.Weekday { return &d }

func testMarkers() []core.LocationMarker {
	return []core.LocationMarker{
		{
			ID:   1,
			Name: "The Anvil",
			Events: []core.Event{
				{ID: 101, LocationID: 1, Name: "Anvil Bootcamp", Day: day(core.Monday), StartTime: "05:30", Types: []core.EventType{core.Bootcamp}, Categories: []core.Category{core.FirstF}},
				{ID: 102, LocationID: 1, Name: "Anvil Run", Day: day(core.Wednesday), StartTime: "05:30", Types: []core.EventType{core.Run}, Categories: []core.Category{core.FirstF}},
			},
		},
		{
			ID:   2,
			Name: "The Forge",
			Events: []core.Event{
				{ID: 201, LocationID: 2, Name: "Forge Ruck", Day: day(core.Saturday), StartTime: "07:00", Types: []core.EventType{core.Ruck}},
			},
		},
		{
			ID:   3,
			Name: "Coffeteria",
			Events: []core.Event{
				{ID: 301, LocationID: 3, Name: "Coffeteria", Day: day(core.Monday), StartTime: "06:15", Types: nil, Categories: []core.Category{core.SecondF}},
			},
		},
	}
}

func TestApply_EmptyStateIsNoOp(t *testing.T) {
	markers := testMarkers()

	got := Apply(markers, State{})

	if len(got) != len(markers) {
		t.Fatalf("expected %d markers, got %d", len(markers), len(got))
	}
	for i := range got {
		if got[i].ID != markers[i].ID {
			t.Errorf("marker %d: got ID %d, want %d", i, got[i].ID, markers[i].ID)
		}
		if len(got[i].Events) != len(markers[i].Events) {
			t.Errorf("marker %d: got %d events, want %d", i, len(got[i].Events), len(markers[i].Events))
		}
	}
}

func TestApply_ExpandedFlagDoesNotFilter(t *testing.T) {
	got := Apply(testMarkers(), State{Expanded: true})
	if len(got) != 3 {
		t.Errorf("expected 3 markers, got %d", len(got))
	}
}

func TestApply_DayFilter(t *testing.T) {
	var s State
	s.SetDay(core.Monday, true)

	got := Apply(testMarkers(), s)

	if len(got) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("expected markers [1 3], got [%d %d]", got[0].ID, got[1].ID)
	}
	if len(got[0].Events) != 1 || got[0].Events[0].ID != 101 {
		t.Errorf("marker 1 should retain only the Monday event, got %v", got[0].Events)
	}
}

func TestApply_TypeFilter(t *testing.T) {
	var s State
	s.SetType(core.Ruck, true)

	got := Apply(testMarkers(), s)

	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only marker 2, got %v", got)
	}
}

func TestApply_TimeFilter(t *testing.T) {
	var s State
	s.TimeMode = TimeBefore
	s.Boundary = 6 * 60 // 06:00

	got := Apply(testMarkers(), s)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("before 06:00: expected only marker 1, got %d markers", len(got))
	}
	if len(got[0].Events) != 2 {
		t.Errorf("both 05:30 events should survive, got %d", len(got[0].Events))
	}

	s.TimeMode = TimeAfter
	got = Apply(testMarkers(), s)
	if len(got) != 2 {
		t.Fatalf("after 06:00: expected 2 markers, got %d", len(got))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	markers := testMarkers()
	var s State
	s.SetDay(core.Monday, true)

	_ = Apply(markers, s)

	if len(markers[0].Events) != 2 {
		t.Errorf("input marker events were mutated, len = %d", len(markers[0].Events))
	}
}

func TestApply_Idempotent(t *testing.T) {
	var s State
	s.SetDay(core.Monday, true)
	s.SetType(core.Bootcamp, true)

	once := Apply(testMarkers(), s)
	twice := Apply(once, s)

	if len(once) != len(twice) {
		t.Fatalf("refiltering changed marker count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID || len(once[i].Events) != len(twice[i].Events) {
			t.Errorf("refiltering changed marker %d", once[i].ID)
		}
	}
}

func TestApply_NilDayFailsActiveDayFilter(t *testing.T) {
	markers := []core.LocationMarker{
		{ID: 9, Events: []core.Event{{ID: 901, Name: "Unscheduled"}}},
	}
	var s State
	s.SetDay(core.Monday, true)

	if got := Apply(markers, s); len(got) != 0 {
		t.Errorf("event without a weekday matched an active day filter: %v", got)
	}
}

func TestSetType_MutuallyExclusive(t *testing.T) {
	var s State
	s.SetType(core.Bootcamp, true)
	s.SetType(core.Run, true)

	want := [core.NumEventTypes]bool{}
	want[core.Run] = true
	if s.Types != want {
		t.Errorf("Types = %v, want only Run active", s.Types)
	}

	s.SetType(core.Run, false)
	if s.Types != ([core.NumEventTypes]bool{}) {
		t.Errorf("Types = %v, want all off", s.Types)
	}
}

func TestSetCategory_MutuallyExclusive(t *testing.T) {
	var s State
	s.SetCategory(core.FirstF, true)
	s.SetCategory(core.SecondF, true)

	want := [core.NumCategories]bool{}
	want[core.SecondF] = true
	if s.Categories != want {
		t.Errorf("Categories = %v, want only SecondF active", s.Categories)
	}
}
