package derive

import (
	"testing"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// milesPerLatDegree approximates one degree of latitude. Markers placed due
// north/south of the center get exact haversine distances, so equal offsets
// make exact ties.
const milesPerLatDegree = 69.09

var testCenter = core.LatLng{Lat: 36.20, Lng: -81.68}

func markerAtMiles(id uint, miles float64, day core.Weekday) core.LocationMarker {
	d := day
	pos := core.LatLng{Lat: testCenter.Lat + miles/milesPerLatDegree, Lng: testCenter.Lng}
	return core.LocationMarker{
		ID:       id,
		Position: &pos,
		Events:   []core.Event{{ID: id*100 + 1, LocationID: id, Name: "Workout", Day: &d}},
	}
}

func newTestDeriver(markers []core.LocationMarker) (*Deriver, *store.FilterStore, *store.ViewStore) {
	dir := cache.NewDirectoryCache()
	dir.Replace(markers)
	filters := store.NewFilterStore()
	view := store.NewViewStore()
	return New(dir, filters, view), filters, view
}

func TestRanked_EmptyWithoutCenter(t *testing.T) {
	d, _, _ := newTestDeriver([]core.LocationMarker{markerAtMiles(1, 1, core.Monday)})

	d.Recompute()

	if len(d.Filtered()) != 1 {
		t.Errorf("filtered should not depend on center, got %d", len(d.Filtered()))
	}
	if len(d.Ranked()) != 0 {
		t.Errorf("ranked should be empty without a center, got %d", len(d.Ranked()))
	}
}

func TestRanked_StableOrderNullsLast(t *testing.T) {
	south := markerAtMiles(4, 3, core.Monday)
	// Mirror marker 4 to the south so markers 2 and 4 tie exactly.
	south.Position.Lat = testCenter.Lat - 3/milesPerLatDegree

	noCoords := core.LocationMarker{
		ID:     3,
		Events: []core.Event{{ID: 301, LocationID: 3, Name: "Workout"}},
	}

	d, _, view := newTestDeriver([]core.LocationMarker{
		markerAtMiles(1, 5, core.Monday),
		markerAtMiles(2, 3, core.Monday),
		noCoords,
		south,
	})
	view.Seed(testCenter, 12)

	d.Recompute()

	ranked := d.Ranked()
	if len(ranked) != 4 {
		t.Fatalf("expected 4 markers, got %d", len(ranked))
	}
	wantOrder := []uint{2, 4, 1, 3}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Fatalf("rank %d: got marker %d, want %d (full order %v)", i, ranked[i].ID, want, rankedIDs(ranked))
		}
	}
	if ranked[3].Distance != nil {
		t.Error("marker without coordinates should have nil distance")
	}
	if ranked[0].Distance == nil || ranked[1].Distance == nil {
		t.Fatal("ranked markers missing distances")
	}
	if *ranked[0].Distance != *ranked[1].Distance {
		t.Errorf("expected exact tie, got %f vs %f", *ranked[0].Distance, *ranked[1].Distance)
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	d, _, view := newTestDeriver([]core.LocationMarker{
		markerAtMiles(1, 2, core.Monday),
		markerAtMiles(2, 1, core.Tuesday),
	})
	view.Seed(testCenter, 12)

	d.Recompute()
	first := d.Ranked()
	d.Recompute()
	second := d.Ranked()

	if len(first) != len(second) {
		t.Fatalf("recompute changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("rank %d changed: %d vs %d", i, first[i].ID, second[i].ID)
		}
		if *first[i].Distance != *second[i].Distance {
			t.Errorf("distance %d changed: %f vs %f", i, *first[i].Distance, *second[i].Distance)
		}
	}
}

func TestRecompute_FilterThenRank(t *testing.T) {
	noCoords := core.LocationMarker{
		ID: 3,
		Events: []core.Event{
			{ID: 301, LocationID: 3, Name: "Workout", Day: dayPtr(core.Monday)},
		},
	}

	d, filters, view := newTestDeriver([]core.LocationMarker{
		markerAtMiles(1, 1, core.Monday),
		markerAtMiles(2, 2, core.Tuesday),
		noCoords,
	})
	view.Seed(testCenter, 12)
	filters.SetDay(core.Monday, true)

	d.Recompute()

	ranked := d.Ranked()
	if len(ranked) != 2 {
		t.Fatalf("Tuesday-only marker should be filtered out, got %v", rankedIDs(ranked))
	}
	if ranked[0].ID != 1 || ranked[1].ID != 3 {
		t.Errorf("expected nearest-first with null-coordinate marker last, got %v", rankedIDs(ranked))
	}
}

func TestStats(t *testing.T) {
	d, _, _ := newTestDeriver(nil)

	d.Recompute()
	d.Recompute()

	n, _ := d.Stats()
	if n != 2 {
		t.Errorf("recompute count = %d, want 2", n)
	}
}

func dayPtr(d core.Weekday) *core.Weekday { return &d }

func rankedIDs(ranked []core.MarkerWithDistance) []uint {
	ids := make([]uint, len(ranked))
	for i, m := range ranked {
		ids[i] = m.ID
	}
	return ids
}
