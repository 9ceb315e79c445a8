package session

import (
	"net/url"
	"strconv"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/config"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Launch sources, in priority order.
const (
	SourceLocation  = "locationId"
	SourceQuery     = "query"
	SourcePersisted = "persisted"
	SourceDefault   = "default"
)

// Launch is the resolved initial state: where the map starts and which
// panel, if any, opens immediately.
type Launch struct {
	Center core.LatLng
	Zoom   float64
	Panel  core.SelectionPair
	Source string
}

// Resolve determines the initial view from the launch query string.
// Priority: an explicit locationId lookup, then explicit lat/lng
// params, then the persisted view state, then the configured default.
// A locationId that is unknown or has no coordinates falls through to
// the next source; its panel still opens when the record exists.
func Resolve(query string, directory *cache.DirectoryCache, persister *store.ViewPersister, cfg config.MapConfig) *Launch {
	params, err := url.ParseQuery(query)
	if err != nil {
		params = url.Values{}
	}

	launch := &Launch{
		Center: core.LatLng{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng},
		Zoom:   cfg.DefaultZoom,
		Source: SourceDefault,
	}

	if persister != nil {
		if center, zoom, ok := persister.Load(); ok {
			launch.Center = center
			launch.Zoom = zoom
			launch.Source = SourcePersisted
		}
	}

	if lat, lng, ok := queryCenter(params); ok {
		launch.Center = core.LatLng{Lat: lat, Lng: lng}
		launch.Zoom = queryZoom(params, cfg.DefaultZoom)
		launch.Source = SourceQuery
	}

	if id, ok := queryUint(params, "locationId"); ok {
		launch.Panel.LocationID = &id
		if eventID, ok := queryUint(params, "eventId"); ok {
			launch.Panel.EventID = &eventID
		}

		if marker, ok := directory.Marker(id); ok && marker.Position != nil {
			launch.Center = *marker.Position
			launch.Zoom = cfg.CloseZoom
			launch.Source = SourceLocation
		}
	}

	return launch
}

// queryCenter reads lat plus lng (or its lon alias).
func queryCenter(params url.Values) (lat, lng float64, ok bool) {
	lat, latOK := queryFloat(params, "lat")
	lng, lngOK := queryFloat(params, "lng")
	if !lngOK {
		lng, lngOK = queryFloat(params, "lon")
	}
	if !latOK || !lngOK {
		return 0, 0, false
	}
	return lat, lng, true
}

func queryZoom(params url.Values, fallback float64) float64 {
	if zoom, ok := queryFloat(params, "zoom"); ok {
		return zoom
	}
	return fallback
}

func queryFloat(params url.Values, key string) (float64, bool) {
	raw := params.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func queryUint(params url.Values, key string) (uint, bool) {
	raw := params.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
