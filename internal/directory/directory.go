// internal/directory/directory.go
package directory

import (
	"context"

	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Source is the interface all marker directory implementations must satisfy
type Source interface {
	// Lifecycle
	Init() error
	Close() error

	// GetAllLocationMarkers returns every location with its events.
	// The returned slice is owned by the caller.
	GetAllLocationMarkers(ctx context.Context) ([]core.LocationMarker, error)
}
