package core

// Bounds is the rectangular viewport in decimal degrees.
type Bounds struct {
	SouthWest LatLng `json:"sw"`
	NorthEast LatLng `json:"ne"`
}

// MapView is the live viewport state: mutated continuously by pan/zoom
// events, read by the derivation pipeline and the selection service.
// Center is nil until the initial view has been resolved.
type MapView struct {
	Center      *LatLng     `json:"center,omitempty"`
	Zoom        float64     `json:"zoom"`
	Bounds      *Bounds     `json:"bounds,omitempty"`
	Interaction Interaction `json:"-"`
}

// SelectionPair identifies a location and optionally one of its events.
// An EventID is only meaningful alongside a non-nil LocationID that
// actually contains that event.
type SelectionPair struct {
	LocationID *uint `json:"locationId"`
	EventID    *uint `json:"eventId"`
}

// Empty reports whether nothing is selected.
func (p SelectionPair) Empty() bool {
	return p.LocationID == nil
}

// Equal reports whether two pairs reference the same location and event.
func (p SelectionPair) Equal(o SelectionPair) bool {
	return uintPtrEqual(p.LocationID, o.LocationID) && uintPtrEqual(p.EventID, o.EventID)
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
