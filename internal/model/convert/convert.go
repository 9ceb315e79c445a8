// Package convert provides functions to convert GORM models to core models
package convert

import (
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/model"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// pointToLatLng converts a stored geom.Point to a core.LatLng.
// Points store longitude as X and latitude as Y; locations without
// coordinates return nil.
func pointToLatLng(p geom.Point, hasPosition bool) *core.LatLng {
	if !hasPosition {
		return nil
	}
	coord, ok := p.Coordinates()
	if !ok {
		return nil
	}
	return &core.LatLng{Lat: coord.XY.Y, Lng: coord.XY.X}
}

// EventToCore converts a GORM Event to a core.Event.
// Unknown tag names in the JSON columns are dropped rather than failing
// the whole record.
func EventToCore(e model.Event) core.Event {
	var day *core.Weekday
	if e.DayOfWeek.Valid {
		d := core.Weekday(e.DayOfWeek.Int16)
		if d.Valid() {
			day = &d
		}
	}

	return core.Event{
		ID:          e.ID,
		LocationID:  e.LocationID,
		Name:        e.Name,
		Description: e.Description,
		Day:         day,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Types:       typesFromJSON(e.Types),
		Categories:  categoriesFromJSON(e.Categories),
	}
}

// LocationToCore converts a GORM Location and its events to a core.LocationMarker.
func LocationToCore(l model.Location) core.LocationMarker {
	events := make([]core.Event, 0, len(l.Events))
	for _, e := range l.Events {
		events = append(events, EventToCore(e))
	}

	return core.LocationMarker{
		ID:       l.ID,
		Name:     l.Name,
		LogoURL:  l.LogoURL,
		Position: pointToLatLng(l.Position, l.HasPosition),
		Events:   events,
	}
}

// LocationsToCore converts a slice of GORM Locations to core markers.
func LocationsToCore(locations []model.Location) []core.LocationMarker {
	markers := make([]core.LocationMarker, 0, len(locations))
	for _, l := range locations {
		markers = append(markers, LocationToCore(l))
	}
	return markers
}

func typesFromJSON(data []byte) []core.EventType {
	var names []string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &names)
	}
	types := make([]core.EventType, 0, len(names))
	for _, name := range names {
		var t core.EventType
		if err := t.UnmarshalText([]byte(name)); err != nil {
			continue
		}
		types = append(types, t)
	}
	return types
}

func categoriesFromJSON(data []byte) []core.Category {
	var names []string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &names)
	}
	categories := make([]core.Category, 0, len(names))
	for _, name := range names {
		var c core.Category
		if err := c.UnmarshalText([]byte(name)); err != nil {
			continue
		}
		categories = append(categories, c)
	}
	return categories
}
