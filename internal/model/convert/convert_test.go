package convert

import (
	"database/sql"
	"testing"

	"gorm.io/datatypes"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/model"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

func TestEventToCore(t *testing.T) {
	e := model.Event{
		LocationID:  7,
		Name:        "The Forge",
		Description: "Bootcamp with a run option",
		DayOfWeek:   sql.NullInt16{Int16: 1, Valid: true},
		StartTime:   "05:30",
		EndTime:     "06:15",
		Types:       datatypes.JSON(`["Bootcamp","Run"]`),
		Categories:  datatypes.JSON(`["1stF"]`),
	}
	e.ID = 42

	got := EventToCore(e)

	if got.ID != 42 || got.LocationID != 7 {
		t.Errorf("ids: got %d/%d", got.ID, got.LocationID)
	}
	if got.Day == nil || *got.Day != core.Monday {
		t.Errorf("day: got %v, want Monday", got.Day)
	}
	if got.StartTime != "05:30" || got.EndTime != "06:15" {
		t.Errorf("times: got %s-%s", got.StartTime, got.EndTime)
	}
	if len(got.Types) != 2 || got.Types[0] != core.Bootcamp || got.Types[1] != core.Run {
		t.Errorf("types: got %v", got.Types)
	}
	if len(got.Categories) != 1 || got.Categories[0] != core.FirstF {
		t.Errorf("categories: got %v", got.Categories)
	}
}

func TestEventToCore_NullDay(t *testing.T) {
	e := model.Event{Name: "Popup", DayOfWeek: sql.NullInt16{}}

	got := EventToCore(e)

	if got.Day != nil {
		t.Errorf("expected nil day, got %v", *got.Day)
	}
}

func TestEventToCore_UnknownTagsDropped(t *testing.T) {
	e := model.Event{
		Types:      datatypes.JSON(`["Bootcamp","Yoga"]`),
		Categories: datatypes.JSON(`["4thF"]`),
	}

	got := EventToCore(e)

	if len(got.Types) != 1 || got.Types[0] != core.Bootcamp {
		t.Errorf("unknown type should be dropped: %v", got.Types)
	}
	if len(got.Categories) != 0 {
		t.Errorf("unknown category should be dropped: %v", got.Categories)
	}
}

func TestEventToCore_MalformedJSON(t *testing.T) {
	e := model.Event{Types: datatypes.JSON(`not json`)}

	got := EventToCore(e)

	if len(got.Types) != 0 {
		t.Errorf("malformed tag column should yield no tags: %v", got.Types)
	}
}

func TestLocationToCore(t *testing.T) {
	day := sql.NullInt16{Int16: 3, Valid: true}
	l := model.Location{
		Name:    "Riverside Park",
		LogoURL: "https://example.org/logo.png",
		Events: []model.Event{
			{Name: "Dawn Patrol", DayOfWeek: day, Types: datatypes.JSON(`["Ruck"]`)},
		},
	}
	l.ID = 3
	position, hasPosition := latLngToPoint(&core.LatLng{Lat: 35.2, Lng: -80.8})
	l.Position = position
	l.HasPosition = hasPosition

	got := LocationToCore(l)

	if got.ID != 3 || got.Name != "Riverside Park" {
		t.Errorf("identity: got %d %q", got.ID, got.Name)
	}
	if got.Position == nil {
		t.Fatal("expected position")
	}
	if got.Position.Lat != 35.2 || got.Position.Lng != -80.8 {
		t.Errorf("position round trip: got %+v", got.Position)
	}
	if len(got.Events) != 1 || got.Events[0].Name != "Dawn Patrol" {
		t.Errorf("events: got %+v", got.Events)
	}
}

func TestLocationToCore_NoPosition(t *testing.T) {
	l := model.Location{Name: "Unmapped AO"}

	got := LocationToCore(l)

	if got.Position != nil {
		t.Errorf("expected nil position, got %+v", got.Position)
	}
}

func TestLocationsToCore(t *testing.T) {
	locations := []model.Location{
		{Name: "First"},
		{Name: "Second"},
	}

	got := LocationsToCore(locations)

	if len(got) != 2 || got[0].Name != "First" || got[1].Name != "Second" {
		t.Errorf("order should be preserved: %+v", got)
	}
}
