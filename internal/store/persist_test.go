package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

func TestViewPersister_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "view.json")
	p := NewViewPersister(path)

	center := core.LatLng{Lat: 36.20, Lng: -81.68}
	view := core.MapView{Center: &center, Zoom: 11}

	if err := p.Save(view); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, zoom, ok := p.Load()
	if !ok {
		t.Fatal("Load returned ok=false after Save")
	}
	if got != center || zoom != 11 {
		t.Errorf("Load = %v, %f; want %v, 11", got, zoom, center)
	}
}

func TestViewPersister_MissingFile(t *testing.T) {
	p := NewViewPersister(filepath.Join(t.TempDir(), "nope.json"))

	if _, _, ok := p.Load(); ok {
		t.Error("expected ok=false for missing file")
	}
}

func TestViewPersister_NilCenterNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	p := NewViewPersister(path)

	if err := p.Save(core.MapView{Zoom: 5}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("view without center should not have been written")
	}
}

func TestViewPersister_VersionMismatchIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"center":{"lat":1,"lng":2},"zoom":9}`), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewViewPersister(path)
	if _, _, ok := p.Load(); ok {
		t.Error("expected ok=false for old format version")
	}
}

func TestViewPersister_CorruptFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewViewPersister(path)
	if _, _, ok := p.Load(); ok {
		t.Error("expected ok=false for corrupt file")
	}
}
