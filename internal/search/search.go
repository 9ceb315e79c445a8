// Package search merges the two text search sources — the in-memory
// directory name match and the external places collaborator — into one
// ranked result list for the search dropdown.
package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/config"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/util"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// PlacesAPI is the external autocomplete collaborator.
type PlacesAPI interface {
	Autocomplete(ctx context.Context, input string, center core.LatLng, zoom float64) ([]core.PlacePrediction, error)
}

// Merger owns the combined search result state. Each keystroke supersedes
// the previous in-flight request: completions are committed only if their
// sequence number is still current, so a slow stale response can never
// clobber a newer one.
type Merger struct {
	directory *cache.DirectoryCache
	places    PlacesAPI
	view      *store.ViewStore
	log       *slog.Logger
	cfg       config.SearchConfig

	mu       sync.Mutex
	seq      uint64
	query    string
	results  []core.SearchResult
	searches int

	subs []store.Listener
}

// New creates a Merger.
func New(directory *cache.DirectoryCache, placesAPI PlacesAPI, view *store.ViewStore, log *slog.Logger, cfg config.SearchConfig) *Merger {
	return &Merger{
		directory: directory,
		places:    placesAPI,
		view:      view,
		log:       log,
		cfg:       cfg,
	}
}

// Subscribe registers a listener invoked when the result list changes.
func (m *Merger) Subscribe(l store.Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, l)
}

// Search dispatches both lookups for the query and returns immediately.
// Queries shorter than the minimum clear the results without any network
// call.
func (m *Merger) Search(ctx context.Context, query string) {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.query = query

	if len(query) < m.cfg.MinQueryLength {
		m.results = nil
		subs := m.copySubsLocked()
		m.mu.Unlock()
		notify(subs)
		return
	}
	m.searches++
	m.mu.Unlock()

	go m.run(ctx, seq, query)
}

// run performs both lookups concurrently, merges, and commits the result
// if the query is still current.
func (m *Merger) run(ctx context.Context, seq uint64, query string) {
	var (
		wg      sync.WaitGroup
		local   []cache.EventMatch
		remote  []core.PlacePrediction
		remErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		local = m.directory.MatchEventNames(query, m.cfg.LocalLimit)
	}()
	go func() {
		defer wg.Done()
		view := m.view.Get()
		center := core.LatLng{}
		if view.Center != nil {
			center = *view.Center
		}
		remote, remErr = m.places.Autocomplete(ctx, query, center, view.Zoom)
	}()
	wg.Wait()

	if remErr != nil {
		// The collaborator failing means an empty external set, not a
		// user-facing error.
		m.log.Warn("places autocomplete failed", "query", query, "error", remErr)
		remote = nil
	}

	combined := merge(remote, local, m.cfg.SourceLimit)

	m.mu.Lock()
	if seq != m.seq {
		// Superseded by a newer keystroke while in flight.
		m.mu.Unlock()
		return
	}
	m.results = combined
	subs := m.copySubsLocked()
	m.mu.Unlock()
	notify(subs)
}

// Results returns the full combined result list, external results first.
func (m *Merger) Results() []core.SearchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results
}

// DisplayResults truncates the combined list for the dropdown. Compact
// layouts show fewer entries.
func (m *Merger) DisplayResults(compact bool) []core.SearchResult {
	limit := m.cfg.DisplayLimit
	if compact {
		limit = m.cfg.CompactLimit
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return util.Truncate(m.results, limit)
}

// Query returns the current search text.
func (m *Merger) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// Searches returns how many queries reached the lookup stage, for the
// monitor.
func (m *Merger) Searches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searches
}

// merge builds the combined list: external predictions first, then local
// event matches, each source independently truncated before concatenation.
func merge(remote []core.PlacePrediction, local []cache.EventMatch, sourceLimit int) []core.SearchResult {
	remote = util.Truncate(remote, sourceLimit)
	local = util.Truncate(local, sourceLimit)

	combined := make([]core.SearchResult, 0, len(remote)+len(local))
	for _, p := range remote {
		combined = append(combined, core.SearchResult{
			Kind:     core.ResultPlace,
			Label:    p.Description,
			PlaceID:  p.PlaceID,
			Position: p.Position,
		})
	}
	for _, e := range local {
		locID := e.LocationID
		eventID := e.EventID
		combined = append(combined, core.SearchResult{
			Kind:       core.ResultEvent,
			Label:      e.Name,
			LocationID: &locID,
			EventID:    &eventID,
			Position:   e.Position,
		})
	}
	return combined
}

func (m *Merger) copySubsLocked() []store.Listener {
	subs := make([]store.Listener, len(m.subs))
	copy(subs, m.subs)
	return subs
}

func notify(subs []store.Listener) {
	for _, l := range subs {
		l()
	}
}
