// internal/directory/memory/memory.go
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/config"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Backend serves the marker directory from an in-memory snapshot,
// optionally seeded from a JSON file.
type Backend struct {
	cfg     config.MemoryConfig
	markers []core.LocationMarker
	mu      sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init loads the seed file if one is configured. A missing seed file is
// not an error; the directory starts empty.
func (b *Backend) Init() error {
	if b.cfg.SeedFile == "" {
		return nil
	}

	data, err := os.ReadFile(b.cfg.SeedFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading seed file: %w", err)
	}

	var markers []core.LocationMarker
	if err := json.Unmarshal(data, &markers); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", b.cfg.SeedFile, err)
	}

	b.mu.Lock()
	b.markers = markers
	b.mu.Unlock()
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// GetAllLocationMarkers returns a copy of the directory snapshot.
func (b *Backend) GetAllLocationMarkers(ctx context.Context) ([]core.LocationMarker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	markers := make([]core.LocationMarker, len(b.markers))
	copy(markers, b.markers)
	return markers, nil
}

// Replace swaps the directory contents. Used by seeding tools and tests.
func (b *Backend) Replace(markers []core.LocationMarker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.markers = markers
}
