package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/derive"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/dispatcher"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/filter"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/influx"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/logging"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/search"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/selection"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/session"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/worker"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Directory  *cache.DirectoryCache
	Filters    *store.FilterStore
	View       *store.ViewStore
	Deriver    *derive.Deriver
	Selection  *selection.Service
	Search     *search.Merger
	Worker     *worker.Manager
	Influx     *influx.Manager
	LogManager *logging.SlogManager
}

// Service routes map client commands to the engine's stores and
// derived pipelines.
type Service struct {
	deps Dependencies
	ctx  *session.Context
}

// NewService creates a new handler service
func NewService(deps Dependencies, ctx *session.Context) *Service {
	return &Service{
		deps: deps,
		ctx:  ctx,
	}
}

// GetSessionContext returns the session context
func (s *Service) GetSessionContext() *session.Context {
	return s.ctx
}

// RegisterHandlers registers all command handlers with the dispatcher.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Viewport updates arrive per pan frame - buffered
	d.Register(":VIEW:UPDATE:", s.handleViewUpdate, dispatcher.Buffered(1000))

	// Filter mutations - sync, low volume
	d.Register(":FILTER:DAY:", s.handleFilterDay, dispatcher.Logged())
	d.Register(":FILTER:TYPE:", s.handleFilterType, dispatcher.Logged())
	d.Register(":FILTER:CATEGORY:", s.handleFilterCategory, dispatcher.Logged())
	d.Register(":FILTER:TIME:", s.handleFilterTime, dispatcher.Logged())
	d.Register(":FILTER:EXPANDED:", s.handleFilterExpanded)
	d.Register(":FILTER:RESET:", s.handleFilterReset, dispatcher.Logged())

	// Selection - sync so hover stays responsive
	d.Register(":SELECT:", s.handleSelect)
	d.Register(":SELECT:CLEAR:", s.handleSelectClear)
	d.Register(":PANEL:OPEN:", s.handlePanelOpen, dispatcher.Logged())
	d.Register(":PANEL:CLOSE:", s.handlePanelClose)

	// Search keystrokes - sync dispatch, async resolution inside
	d.Register(":SEARCH:", s.handleSearch)

	// Directory writes elsewhere in the system invalidate the cache
	d.Register(":DIRECTORY:INVALIDATE:", s.handleInvalidate, dispatcher.Logged())

	// Client-submitted metrics - buffered, fire and forget
	d.Register(":METRIC:", s.handleMetric, dispatcher.Buffered(1000))

	// Read-side queries returning JSON payloads
	d.Register(":GET:FILTERED:", s.handleGetFiltered)
	d.Register(":GET:RANKED:", s.handleGetRanked)
	d.Register(":GET:SELECTED:", s.handleGetSelected)
	d.Register(":GET:PANEL:", s.handleGetPanel)
	d.Register(":GET:SEARCH:", s.handleGetSearch)
}

// handleViewUpdate expects args:
// lat, lng, zoom, swLat, swLng, neLat, neLng, interaction
func (s *Service) handleViewUpdate(e dispatcher.Event) (any, error) {
	if len(e.Args) < 8 {
		return nil, fmt.Errorf("view update needs 8 args, got %d", len(e.Args))
	}

	coords := make([]float64, 7)
	for i := 0; i < 7; i++ {
		v, err := strconv.ParseFloat(e.Args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("view update arg %d: %w", i, err)
		}
		coords[i] = v
	}

	interaction, err := parseInteraction(e.Args[7])
	if err != nil {
		return nil, err
	}

	center := core.LatLng{Lat: coords[0], Lng: coords[1]}
	bounds := core.Bounds{
		SouthWest: core.LatLng{Lat: coords[3], Lng: coords[4]},
		NorthEast: core.LatLng{Lat: coords[5], Lng: coords[6]},
	}

	s.deps.View.Update(center, coords[2], bounds, interaction)
	s.deps.Deriver.Recompute()
	return nil, nil
}

func (s *Service) handleFilterDay(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, fmt.Errorf("day filter needs day and state")
	}

	var day core.Weekday
	if err := day.UnmarshalText([]byte(e.Args[0])); err != nil {
		return nil, err
	}
	on, err := strconv.ParseBool(e.Args[1])
	if err != nil {
		return nil, fmt.Errorf("day filter state: %w", err)
	}

	s.deps.Filters.SetDay(day, on)
	s.deps.Deriver.Recompute()
	return nil, nil
}

func (s *Service) handleFilterType(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, fmt.Errorf("type filter needs type and state")
	}

	var eventType core.EventType
	if err := eventType.UnmarshalText([]byte(e.Args[0])); err != nil {
		return nil, err
	}
	on, err := strconv.ParseBool(e.Args[1])
	if err != nil {
		return nil, fmt.Errorf("type filter state: %w", err)
	}

	s.deps.Filters.SetType(eventType, on)
	s.deps.Deriver.Recompute()
	return nil, nil
}

func (s *Service) handleFilterCategory(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, fmt.Errorf("category filter needs category and state")
	}

	var category core.Category
	if err := category.UnmarshalText([]byte(e.Args[0])); err != nil {
		return nil, err
	}
	on, err := strconv.ParseBool(e.Args[1])
	if err != nil {
		return nil, fmt.Errorf("category filter state: %w", err)
	}

	s.deps.Filters.SetCategory(category, on)
	s.deps.Deriver.Recompute()
	return nil, nil
}

// handleFilterTime expects args: mode ("none"|"before"|"after"), clock "HH:mm"
func (s *Service) handleFilterTime(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("time filter needs a mode")
	}

	var mode filter.TimeMode
	switch strings.ToLower(e.Args[0]) {
	case "none":
		mode = filter.TimeNone
	case "before":
		mode = filter.TimeBefore
	case "after":
		mode = filter.TimeAfter
	default:
		return nil, fmt.Errorf("unknown time filter mode %q", e.Args[0])
	}

	clock := ""
	if len(e.Args) > 1 {
		clock = e.Args[1]
	}

	if err := s.deps.Filters.SetTimeFilter(mode, clock); err != nil {
		return nil, err
	}
	s.deps.Deriver.Recompute()
	return nil, nil
}

func (s *Service) handleFilterExpanded(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("expanded flag missing")
	}
	expanded, err := strconv.ParseBool(e.Args[0])
	if err != nil {
		return nil, err
	}
	s.deps.Filters.SetExpanded(expanded)
	return nil, nil
}

func (s *Service) handleFilterReset(e dispatcher.Event) (any, error) {
	s.deps.Filters.Reset()
	s.deps.Deriver.Recompute()
	return nil, nil
}

// handleSelect expects args: locationId [, eventId]
func (s *Service) handleSelect(e dispatcher.Event) (any, error) {
	locationID, eventID, err := parseSelection(e.Args)
	if err != nil {
		return nil, err
	}
	s.deps.Selection.SetSelected(locationID, eventID)
	return nil, nil
}

func (s *Service) handleSelectClear(e dispatcher.Event) (any, error) {
	s.deps.Selection.ClearSelected()
	return nil, nil
}

func (s *Service) handlePanelOpen(e dispatcher.Event) (any, error) {
	locationID, eventID, err := parseSelection(e.Args)
	if err != nil {
		return nil, err
	}
	s.deps.Selection.OpenPanel(locationID, eventID)
	return nil, nil
}

func (s *Service) handlePanelClose(e dispatcher.Event) (any, error) {
	s.deps.Selection.ClosePanel()
	return nil, nil
}

func (s *Service) handleSearch(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("search needs a query")
	}
	s.deps.Search.Search(context.Background(), e.Args[0])
	return nil, nil
}

func (s *Service) handleInvalidate(e dispatcher.Event) (any, error) {
	reason := "unspecified"
	if len(e.Args) > 0 {
		reason = e.Args[0]
	}
	s.deps.Worker.Invalidate(reason)
	return nil, nil
}

// handleMetric forwards a client-submitted metric to InfluxDB. Args:
// bucket, measurement, then tag::k::v and field::type::name::value
// entries.
func (s *Service) handleMetric(e dispatcher.Event) (any, error) {
	if s.deps.Influx == nil {
		return nil, fmt.Errorf("metrics sink not configured")
	}
	bucket, point, err := influx.ProcessMetricData(e.Args)
	if err != nil {
		return nil, err
	}
	return nil, s.deps.Influx.WritePoint(context.Background(), bucket, point)
}

func (s *Service) handleGetFiltered(e dispatcher.Event) (any, error) {
	return toJSON(s.deps.Deriver.Filtered())
}

func (s *Service) handleGetRanked(e dispatcher.Event) (any, error) {
	return toJSON(s.deps.Deriver.Ranked())
}

func (s *Service) handleGetSelected(e dispatcher.Event) (any, error) {
	marker, event, ok := s.deps.Selection.SelectedMarker()
	if !ok {
		return "null", nil
	}
	return toJSON(selectionPayload{Marker: marker, Event: event})
}

func (s *Service) handleGetPanel(e dispatcher.Event) (any, error) {
	marker, event, ok := s.deps.Selection.PanelMarker()
	if !ok {
		return "null", nil
	}
	return toJSON(selectionPayload{Marker: marker, Event: event})
}

func (s *Service) handleGetSearch(e dispatcher.Event) (any, error) {
	compact := len(e.Args) > 0 && e.Args[0] == "compact"
	return toJSON(s.deps.Search.DisplayResults(compact))
}

type selectionPayload struct {
	Marker core.LocationMarker `json:"marker"`
	Event  *core.Event         `json:"event,omitempty"`
}

func parseSelection(args []string) (uint, *uint, error) {
	if len(args) < 1 {
		return 0, nil, fmt.Errorf("selection needs a locationId")
	}
	locationID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("locationId: %w", err)
	}

	var eventID *uint
	if len(args) > 1 && args[1] != "" {
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return 0, nil, fmt.Errorf("eventId: %w", err)
		}
		e := uint(id)
		eventID = &e
	}
	return uint(locationID), eventID, nil
}

func parseInteraction(s string) (core.Interaction, error) {
	switch strings.ToLower(s) {
	case "idle":
		return core.Idle, nil
	case "drag":
		return core.Drag, nil
	case "zoom":
		return core.Zoom, nil
	default:
		return core.Idle, fmt.Errorf("unknown interaction %q", s)
	}
}

func toJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return string(data), nil
}
