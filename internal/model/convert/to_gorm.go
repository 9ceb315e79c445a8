// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"database/sql"
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/model"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// latLngToPoint converts a core.LatLng to a stored geom.Point with
// longitude as X and latitude as Y. A nil or invalid position yields
// the empty point and hasPosition false.
func latLngToPoint(p *core.LatLng) (geom.Point, bool) {
	if p == nil {
		return geom.Point{}, false
	}
	coords := geom.Coordinates{XY: geom.XY{X: p.Lng, Y: p.Lat}}
	point, err := geom.NewPoint(coords)
	if err != nil {
		return geom.Point{}, false
	}
	return point, true
}

// tagsToJSON converts a slice of text-marshalable tags to datatypes.JSON
// for DB storage.
func tagsToJSON[T interface{ MarshalText() ([]byte, error) }](tags []T) datatypes.JSON {
	if len(tags) == 0 {
		return datatypes.JSON("[]")
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		text, err := tag.MarshalText()
		if err != nil {
			continue
		}
		names = append(names, string(text))
	}
	data, _ := json.Marshal(names)
	return datatypes.JSON(data)
}

// CoreToEvent converts a core.Event to a GORM model.Event.
func CoreToEvent(e core.Event) model.Event {
	var day sql.NullInt16
	if e.Day != nil {
		day = sql.NullInt16{Int16: int16(*e.Day), Valid: true}
	}

	ev := model.Event{
		LocationID:  e.LocationID,
		Name:        e.Name,
		Description: e.Description,
		DayOfWeek:   day,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Types:       tagsToJSON(e.Types),
		Categories:  tagsToJSON(e.Categories),
	}
	ev.ID = e.ID
	return ev
}

// CoreToLocation converts a core.LocationMarker to a GORM model.Location.
func CoreToLocation(m core.LocationMarker) model.Location {
	position, hasPosition := latLngToPoint(m.Position)

	events := make([]model.Event, 0, len(m.Events))
	for _, e := range m.Events {
		events = append(events, CoreToEvent(e))
	}

	loc := model.Location{
		Name:        m.Name,
		LogoURL:     m.LogoURL,
		Position:    position,
		HasPosition: hasPosition,
		Events:      events,
	}
	loc.ID = m.ID
	return loc
}
