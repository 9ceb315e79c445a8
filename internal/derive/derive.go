// Package derive recomputes the filtered and distance-ranked marker lists
// whenever the directory, the filters, or the map center change.
package derive

import (
	"sort"
	"sync"
	"time"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/filter"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/geo"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Deriver owns the two derived views over the directory: the filtered
// marker list and the same list ranked by distance from the map center.
// Recompute is idempotent: unchanged inputs produce equal outputs.
type Deriver struct {
	directory *cache.DirectoryCache
	filters   *store.FilterStore
	view      *store.ViewStore

	mu           sync.RWMutex
	filtered     []core.LocationMarker
	ranked       []core.MarkerWithDistance
	recomputes   int
	lastDuration time.Duration
}

// New creates a Deriver over the given dependencies. Callers wire
// Recompute to the store change notifications.
func New(directory *cache.DirectoryCache, filters *store.FilterStore, view *store.ViewStore) *Deriver {
	return &Deriver{
		directory: directory,
		filters:   filters,
		view:      view,
	}
}

// Recompute rebuilds both derived lists from current inputs.
func (d *Deriver) Recompute() {
	start := time.Now()

	markers := d.directory.Snapshot()
	filtered := filter.Apply(markers, d.filters.Get())
	ranked := rank(filtered, d.view.Get().Center)

	d.mu.Lock()
	d.filtered = filtered
	d.ranked = ranked
	d.recomputes++
	d.lastDuration = time.Since(start)
	d.mu.Unlock()
}

// Filtered returns the markers surviving the active filters, in directory
// order. Read-only for callers.
func (d *Deriver) Filtered() []core.LocationMarker {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filtered
}

// Ranked returns the filtered markers ordered nearest-first from the
// current map center. Markers without coordinates sort last; ties keep
// their directory order. Empty until a center is resolved.
func (d *Deriver) Ranked() []core.MarkerWithDistance {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ranked
}

// Stats returns the recompute count and the duration of the last pass.
func (d *Deriver) Stats() (recomputes int, last time.Duration) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.recomputes, d.lastDuration
}

// rank maps markers to their distance from center and stable-sorts
// ascending. A nil center means the viewport is not resolved yet, which
// yields an empty list rather than an error.
func rank(markers []core.LocationMarker, center *core.LatLng) []core.MarkerWithDistance {
	ranked := make([]core.MarkerWithDistance, 0, len(markers))
	if center == nil {
		return ranked
	}

	for _, m := range markers {
		entry := core.MarkerWithDistance{LocationMarker: m}
		if miles, ok := geo.MarkerMiles(*center, m.Position); ok {
			entry.Distance = &miles
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Distance, ranked[j].Distance
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return ranked
}
