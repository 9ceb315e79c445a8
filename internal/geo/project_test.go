package geo

import (
	"math"
	"testing"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

var testBounds = core.Bounds{
	SouthWest: core.LatLng{Lat: 36.10, Lng: -81.80},
	NorthEast: core.LatLng{Lat: 36.30, Lng: -81.60},
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		name string
		p    core.LatLng
		want bool
	}{
		{"center", core.LatLng{Lat: 36.20, Lng: -81.70}, true},
		{"sw corner", core.LatLng{Lat: 36.10, Lng: -81.80}, true},
		{"ne corner", core.LatLng{Lat: 36.30, Lng: -81.60}, true},
		{"north of bounds", core.LatLng{Lat: 36.40, Lng: -81.70}, false},
		{"west of bounds", core.LatLng{Lat: 36.20, Lng: -81.90}, false},
		{"far away", core.LatLng{Lat: -33.86, Lng: 151.21}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InBounds(testBounds, tt.p); got != tt.want {
				t.Errorf("InBounds(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestInBounds_DegenerateBounds(t *testing.T) {
	bad := core.Bounds{
		SouthWest: core.LatLng{Lat: math.NaN(), Lng: math.NaN()},
		NorthEast: core.LatLng{Lat: 36.30, Lng: -81.60},
	}
	if InBounds(bad, core.LatLng{Lat: 36.20, Lng: -81.70}) {
		t.Error("expected false for bounds with NaN corners")
	}
}

func TestProject_OutOfBounds(t *testing.T) {
	if _, ok := Project(testBounds, 12, core.LatLng{Lat: 40.0, Lng: -81.70}); ok {
		t.Error("expected ok=false for point outside bounds")
	}
}

func TestProject_NorthWestCornerIsOrigin(t *testing.T) {
	nw := core.LatLng{Lat: testBounds.NorthEast.Lat, Lng: testBounds.SouthWest.Lng}

	a, ok := Project(testBounds, 12, nw)
	if !ok {
		t.Fatal("expected ok=true for NW corner")
	}
	if math.Abs(a.X) > 0.5 || math.Abs(a.Y) > 0.5 {
		t.Errorf("NW corner anchor = (%.3f, %.3f), want (0, 0)", a.X, a.Y)
	}
}

func TestProject_InteriorPointPositive(t *testing.T) {
	p := core.LatLng{Lat: 36.20, Lng: -81.70}

	a, ok := Project(testBounds, 12, p)
	if !ok {
		t.Fatal("expected ok=true for interior point")
	}
	if a.X <= 0 || a.Y <= 0 {
		t.Errorf("interior anchor = (%.3f, %.3f), want positive offsets", a.X, a.Y)
	}

	// Doubling the zoom level doubles pixel offsets per halved resolution.
	b, _ := Project(testBounds, 13, p)
	if math.Abs(b.X/a.X-2) > 0.01 || math.Abs(b.Y/a.Y-2) > 0.01 {
		t.Errorf("zoom 13 anchor = (%.3f, %.3f), want double of (%.3f, %.3f)", b.X, b.Y, a.X, a.Y)
	}
}
