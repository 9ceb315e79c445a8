// Package geo provides great-circle distance and viewport projection math
// for the map engine.
package geo

import (
	"math"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

const (
	earthRadiusKm = 6371.0
	metersPerMile = 1609.34
)

// Miles computes the great-circle distance between two points in miles
// using the haversine formula. Symmetric: Miles(a, b) == Miles(b, a).
func Miles(a, b core.LatLng) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	deltaLat := degreesToRadians(b.Lat - a.Lat)
	deltaLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c * 1000 / metersPerMile
}

// MarkerMiles computes the distance in miles from center to an optional
// marker position. Markers that have not been geocoded yet have a nil
// position and report ok=false; they are unrankable, not an error.
func MarkerMiles(center core.LatLng, pos *core.LatLng) (float64, bool) {
	if pos == nil {
		return 0, false
	}
	return Miles(center, *pos), true
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
