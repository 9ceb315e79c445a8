// Package cache holds the in-memory copy of the directory between fetches.
// Latency matters here: selection resolution and local search run against
// this cache on every hover and keystroke, never against the backend.
package cache

import (
	"strings"
	"sync"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// EventMatch is one local search hit: an event whose name contains the
// query, plus enough context to open its marker.
type EventMatch struct {
	LocationID uint
	EventID    uint
	Name       string
	Position   *core.LatLng
}

// DirectoryCache caches the fetched location markers. It is replaced
// wholesale on every directory load and invalidated on any write approval
// elsewhere in the system.
type DirectoryCache struct {
	mu      sync.RWMutex
	markers []core.LocationMarker
	index   map[uint]int // marker ID -> position in markers
	valid   bool
}

// NewDirectoryCache creates an empty, invalid cache.
func NewDirectoryCache() *DirectoryCache {
	return &DirectoryCache{
		index: make(map[uint]int),
	}
}

// Replace swaps in a freshly fetched marker list and marks the cache valid.
func (c *DirectoryCache) Replace(markers []core.LocationMarker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markers = markers
	c.index = make(map[uint]int, len(markers))
	for i := range markers {
		c.index[markers[i].ID] = i
	}
	c.valid = true
}

// Invalidate marks the cache stale. Readers keep getting the previous data
// until the next Replace, so the UI stays functional during refetch.
func (c *DirectoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

// Valid reports whether the cache holds current data.
func (c *DirectoryCache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

// Snapshot returns the cached marker list. Callers must treat the result
// as read-only.
func (c *DirectoryCache) Snapshot() []core.LocationMarker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.markers
}

// Marker returns the marker with the given ID.
func (c *DirectoryCache) Marker(id uint) (core.LocationMarker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return core.LocationMarker{}, false
	}
	return c.markers[i], true
}

// MatchEventNames returns up to limit events whose names contain the query,
// case-insensitive, in directory order.
func (c *DirectoryCache) MatchEventNames(query string, limit int) []EventMatch {
	if query == "" || limit <= 0 {
		return nil
	}
	needle := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []EventMatch
	for i := range c.markers {
		m := &c.markers[i]
		for j := range m.Events {
			e := &m.Events[j]
			if !strings.Contains(strings.ToLower(e.Name), needle) {
				continue
			}
			matches = append(matches, EventMatch{
				LocationID: m.ID,
				EventID:    e.ID,
				Name:       e.Name,
				Position:   m.Position,
			})
			if len(matches) >= limit {
				return matches
			}
		}
	}
	return matches
}

// SafeCounter is a thread-safe counter used for engine statistics.
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

// Value returns the current count.
func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// Inc increments the counter.
func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}

// Reset sets the counter back to zero.
func (c *SafeCounter) Reset() {
	c.mu.Lock()
	c.v = 0
	c.mu.Unlock()
}
