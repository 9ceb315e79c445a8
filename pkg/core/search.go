package core

// PlacePrediction is one autocomplete suggestion from the external places
// collaborator.
type PlacePrediction struct {
	PlaceID     string  `json:"placeId"`
	Description string  `json:"description"`
	Position    *LatLng `json:"position,omitempty"`
}

// SearchResultKind distinguishes the two sources merged into the search
// dropdown.
type SearchResultKind int

const (
	// ResultPlace comes from the external places collaborator.
	ResultPlace SearchResultKind = iota
	// ResultEvent comes from the in-memory directory name match.
	ResultEvent
)

func (k SearchResultKind) String() string {
	switch k {
	case ResultPlace:
		return "place"
	case ResultEvent:
		return "event"
	default:
		return "unknown"
	}
}

// SearchResult is one entry in the merged search dropdown. Place results
// carry a PlaceID, event results carry the location/event pair needed to
// open the marker.
type SearchResult struct {
	Kind       SearchResultKind `json:"kind"`
	Label      string           `json:"label"`
	PlaceID    string           `json:"placeId,omitempty"`
	LocationID *uint            `json:"locationId,omitempty"`
	EventID    *uint            `json:"eventId,omitempty"`
	Position   *LatLng          `json:"position,omitempty"`
}
