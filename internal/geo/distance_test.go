package geo

import (
	"math"
	"testing"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

func TestMiles(t *testing.T) {
	tests := []struct {
		name      string
		a         core.LatLng
		b         core.LatLng
		expected  float64
		tolerance float64
	}{
		{
			name:      "same location",
			a:         core.LatLng{Lat: 36.20, Lng: -81.68},
			b:         core.LatLng{Lat: 36.20, Lng: -81.68},
			expected:  0.0,
			tolerance: 0.001,
		},
		{
			name:      "New York to London",
			a:         core.LatLng{Lat: 40.7128, Lng: -74.0060},
			b:         core.LatLng{Lat: 51.5074, Lng: -0.1278},
			expected:  3461.0,
			tolerance: 10.0,
		},
		{
			name:      "short hop",
			a:         core.LatLng{Lat: 36.2168, Lng: -81.6746},
			b:         core.LatLng{Lat: 36.2312, Lng: -81.6746},
			expected:  1.0,
			tolerance: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Miles(tt.a, tt.b)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("Miles() = %.3f, expected %.3f (±%.3f)", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestMilesSymmetric(t *testing.T) {
	a := core.LatLng{Lat: 36.20, Lng: -81.68}
	b := core.LatLng{Lat: 35.23, Lng: -80.84}

	ab := Miles(a, b)
	ba := Miles(b, a)
	if ab != ba {
		t.Errorf("Miles not symmetric: %.6f vs %.6f", ab, ba)
	}
}

func TestMarkerMiles_NilPosition(t *testing.T) {
	center := core.LatLng{Lat: 36.20, Lng: -81.68}

	if _, ok := MarkerMiles(center, nil); ok {
		t.Error("expected ok=false for nil position")
	}

	pos := core.LatLng{Lat: 36.21, Lng: -81.69}
	d, ok := MarkerMiles(center, &pos)
	if !ok {
		t.Fatal("expected ok=true for valid position")
	}
	if d <= 0 {
		t.Errorf("expected positive distance, got %f", d)
	}
}
