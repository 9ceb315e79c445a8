// Package selection tracks which marker is hover-selected and which is
// pinned in the detail panel. The two tracks are independent: a user can
// hover one marker while a different marker's panel stays open.
package selection

import (
	"log/slog"
	"sync"
	"time"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/geo"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Config holds the selection tuning knobs.
type Config struct {
	// CloseZoom is the zoom at or above which hover selection resolves
	// immediately. Below it the effective selection is debounced so
	// panning across markers does not fire a lookup per frame.
	CloseZoom float64
	// Debounce is the delay applied below CloseZoom.
	Debounce time.Duration
}

// Service is the selection state container.
type Service struct {
	directory *cache.DirectoryCache
	view      *store.ViewStore
	log       *slog.Logger
	cfg       Config

	mu sync.Mutex
	// selected is the raw hover/click track, updated immediately.
	selected core.SelectionPair
	// effective is the debounced value feeding data lookups.
	effective core.SelectionPair
	// panel is the detail-panel track, never debounced.
	panel core.SelectionPair

	timer      *time.Timer
	generation uint64
	resolves   int

	subs []store.Listener
}

// New creates a selection service.
func New(directory *cache.DirectoryCache, view *store.ViewStore, log *slog.Logger, cfg Config) *Service {
	return &Service{
		directory: directory,
		view:      view,
		log:       log,
		cfg:       cfg,
	}
}

// Subscribe registers a listener invoked whenever the effective selection
// or the panel track changes.
func (s *Service) Subscribe(l store.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, l)
}

// SetSelected updates the hover track. The raw value changes immediately;
// the effective value resolves after the zoom-dependent debounce. A newer
// call supersedes any pending timer (last write wins).
func (s *Service) SetSelected(locationID uint, eventID *uint) {
	pair := core.SelectionPair{LocationID: &locationID, EventID: eventID}

	s.mu.Lock()
	s.selected = pair
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	delay := s.delayLocked()
	if delay <= 0 {
		s.resolveLocked(gen, pair)
		subs := s.copySubsLocked()
		s.mu.Unlock()
		notify(subs)
		return
	}

	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if gen != s.generation {
			// A newer selection superseded this timer before it fired.
			s.mu.Unlock()
			return
		}
		s.resolveLocked(gen, pair)
		subs := s.copySubsLocked()
		s.mu.Unlock()
		notify(subs)
	})
	s.mu.Unlock()
}

// ClearSelected empties the hover track and cancels any pending debounce.
func (s *Service) ClearSelected() {
	s.mu.Lock()
	s.selected = core.SelectionPair{}
	s.effective = core.SelectionPair{}
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	subs := s.copySubsLocked()
	s.mu.Unlock()
	notify(subs)
}

// OpenPanel pins a marker in the detail panel. Independent of the hover
// track and never debounced.
func (s *Service) OpenPanel(locationID uint, eventID *uint) {
	s.mu.Lock()
	s.panel = core.SelectionPair{LocationID: &locationID, EventID: eventID}
	subs := s.copySubsLocked()
	s.mu.Unlock()
	notify(subs)
}

// ClosePanel resets the panel track.
func (s *Service) ClosePanel() {
	s.mu.Lock()
	s.panel = core.SelectionPair{}
	subs := s.copySubsLocked()
	s.mu.Unlock()
	notify(subs)
}

// Selected returns the raw hover pair.
func (s *Service) Selected() core.SelectionPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Effective returns the debounced pair feeding data lookups.
func (s *Service) Effective() core.SelectionPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effective
}

// Panel returns the panel pair.
func (s *Service) Panel() core.SelectionPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// SelectedMarker resolves the effective selection against fetched data.
// With no explicit event, the location's first event is used once its
// record is available. A selection pointing at a record that no longer
// exists degrades to "nothing selected" rather than erroring.
func (s *Service) SelectedMarker() (core.LocationMarker, *core.Event, bool) {
	return s.resolvePair(s.Effective())
}

// PanelMarker resolves the panel selection the same way.
func (s *Service) PanelMarker() (core.LocationMarker, *core.Event, bool) {
	return s.resolvePair(s.Panel())
}

// Anchor computes the pixel anchor for the selected marker's overlay.
// Returns ok=false when nothing is selected, the marker has no
// coordinates, the viewport bounds are unknown, or the marker is
// off-screen.
func (s *Service) Anchor() (geo.Anchor, bool) {
	marker, _, ok := s.SelectedMarker()
	if !ok || marker.Position == nil {
		return geo.Anchor{}, false
	}
	view := s.view.Get()
	if view.Bounds == nil {
		return geo.Anchor{}, false
	}
	return geo.Project(*view.Bounds, view.Zoom, *marker.Position)
}

// Resolves returns how many debounced lookups have fired, for the monitor.
func (s *Service) Resolves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolves
}

func (s *Service) resolvePair(pair core.SelectionPair) (core.LocationMarker, *core.Event, bool) {
	if pair.LocationID == nil {
		return core.LocationMarker{}, nil, false
	}
	marker, ok := s.directory.Marker(*pair.LocationID)
	if !ok {
		// Deleted between fetch and display.
		s.log.Debug("selection resolves to missing location", "locationID", *pair.LocationID)
		return core.LocationMarker{}, nil, false
	}
	if pair.EventID != nil {
		event := marker.EventByID(*pair.EventID)
		if event == nil {
			return core.LocationMarker{}, nil, false
		}
		return marker, event, true
	}
	return marker, marker.FirstEvent(), true
}

// delayLocked returns the debounce delay for the current zoom.
func (s *Service) delayLocked() time.Duration {
	if s.view.Get().Zoom >= s.cfg.CloseZoom {
		return 0
	}
	return s.cfg.Debounce
}

func (s *Service) resolveLocked(gen uint64, pair core.SelectionPair) {
	s.effective = pair
	s.timer = nil
	s.resolves++
	s.log.Debug("selection resolved", "generation", gen, "locationID", *pair.LocationID)
}

func (s *Service) copySubsLocked() []store.Listener {
	subs := make([]store.Listener, len(s.subs))
	copy(subs, s.subs)
	return subs
}

func notify(subs []store.Listener) {
	for _, l := range subs {
		l()
	}
}
