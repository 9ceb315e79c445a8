package geo

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// baseResolution is meters per pixel at zoom 0 in EPSG:3857 with 256px tiles.
const baseResolution = 156543.03392804097

// Anchor is a pixel offset from the viewport's north-west corner, used to
// place the selection overlay over the map widget.
type Anchor struct {
	X float64
	Y float64
}

// boundsEnvelope builds an axis-aligned envelope for the viewport bounds.
func boundsEnvelope(b core.Bounds) (geom.Envelope, error) {
	return geom.NewEnvelope([]geom.XY{
		{X: b.SouthWest.Lng, Y: b.SouthWest.Lat},
		{X: b.NorthEast.Lng, Y: b.NorthEast.Lat},
	})
}

// InBounds reports whether p lies within the viewport bounds, edges included.
func InBounds(b core.Bounds, p core.LatLng) bool {
	env, err := boundsEnvelope(b)
	if err != nil {
		return false
	}
	return env.Contains(geom.XY{X: p.Lng, Y: p.Lat})
}

// Project converts a geographic point into a pixel anchor relative to the
// viewport's north-west corner at the given zoom. Points outside the bounds
// return ok=false: the overlay must not render off-screen.
func Project(b core.Bounds, zoom float64, p core.LatLng) (Anchor, bool) {
	if !InBounds(b, p) {
		return Anchor{}, false
	}

	// Project through EPSG:3857 so pixel spacing matches the map widget's
	// Web Mercator tiles.
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)

	x, y, _ := f(p.Lng, p.Lat, 0)
	minX, _, _ := f(b.SouthWest.Lng, b.SouthWest.Lat, 0)
	_, maxY, _ := f(b.NorthEast.Lng, b.NorthEast.Lat, 0)

	res := baseResolution / math.Pow(2, zoom)
	return Anchor{
		X: (x - minX) / res,
		Y: (maxY - y) / res,
	}, true
}
