package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// viewStateVersion guards the persisted file format. Files written under a
// different version are ignored at rehydration.
const viewStateVersion = 2

type persistedView struct {
	Version int         `json:"version"`
	Center  core.LatLng `json:"center"`
	Zoom    float64     `json:"zoom"`
}

// ViewPersister saves and restores the last known map center/zoom across
// sessions. It is the lowest-priority source when resolving the initial
// view at bootstrap.
type ViewPersister struct {
	path string
}

// NewViewPersister creates a persister writing to the given file path.
func NewViewPersister(path string) *ViewPersister {
	return &ViewPersister{path: path}
}

// Save writes the current center and zoom. Views without a resolved center
// are not persisted.
func (p *ViewPersister) Save(v core.MapView) error {
	if v.Center == nil {
		return nil
	}
	data, err := json.Marshal(persistedView{
		Version: viewStateVersion,
		Center:  *v.Center,
		Zoom:    v.Zoom,
	})
	if err != nil {
		return fmt.Errorf("marshal view state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write view state: %w", err)
	}
	return nil
}

// Load returns the persisted center and zoom. ok is false when the file is
// missing, unreadable, or written under a different format version; a
// stale or damaged state file is never an error, just absent.
func (p *ViewPersister) Load() (center core.LatLng, zoom float64, ok bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return core.LatLng{}, 0, false
	}
	var pv persistedView
	if err := json.Unmarshal(data, &pv); err != nil {
		return core.LatLng{}, 0, false
	}
	if pv.Version != viewStateVersion {
		return core.LatLng{}, 0, false
	}
	return pv.Center, pv.Zoom, true
}
