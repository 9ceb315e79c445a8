package core

// LatLng is a point in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is a recurring workout belonging to exactly one location.
// Day is nil for events with no fixed weekday, and StartTime/EndTime are
// "HH:mm" strings, empty when unknown.
type Event struct {
	ID          uint        `json:"id"`
	LocationID  uint        `json:"locationId"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Day         *Weekday    `json:"day,omitempty"`
	StartTime   string      `json:"startTime,omitempty"`
	EndTime     string      `json:"endTime,omitempty"`
	Types       []EventType `json:"types"`
	Categories  []Category  `json:"categories,omitempty"`
}

// LocationMarker is a sparse point record in the directory. Position is nil
// until the location has been geocoded. Markers are read-only on this side
// of the system; edits flow through the admin review pipeline elsewhere.
type LocationMarker struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	LogoURL  string  `json:"logoUrl,omitempty"`
	Position *LatLng `json:"position,omitempty"`
	Events   []Event `json:"events"`
}

// FirstEvent returns the location's first event, or nil if it has none.
func (m *LocationMarker) FirstEvent() *Event {
	if len(m.Events) == 0 {
		return nil
	}
	return &m.Events[0]
}

// EventByID returns the event with the given ID, or nil if the marker does
// not contain it.
func (m *LocationMarker) EventByID(id uint) *Event {
	for i := range m.Events {
		if m.Events[i].ID == id {
			return &m.Events[i]
		}
	}
	return nil
}

// MarkerWithDistance is a LocationMarker extended with the derived distance
// in miles from the current map center. Distance is nil for markers without
// coordinates; such markers rank last. Never persisted.
type MarkerWithDistance struct {
	LocationMarker
	Distance *float64 `json:"distance"`
}
