// internal/directory/gorm/gorm.go
package gormdirectory

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/model"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/model/convert"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Backend serves the marker directory from a GORM-managed database.
type Backend struct {
	db *gorm.DB
}

// New creates a new GORM-backed directory source
func New(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// Init verifies the schema is present.
func (b *Backend) Init() error {
	if b.db == nil {
		return fmt.Errorf("no database connection")
	}
	if !b.db.Migrator().HasTable(&model.Location{}) {
		return fmt.Errorf("locations table missing, run migrations first")
	}
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// GetAllLocationMarkers loads every location with its events and
// converts them to core markers.
func (b *Backend) GetAllLocationMarkers(ctx context.Context) ([]core.LocationMarker, error) {
	var locations []model.Location
	err := b.db.WithContext(ctx).
		Preload("Events").
		Order("id").
		Find(&locations).Error
	if err != nil {
		return nil, fmt.Errorf("loading locations: %w", err)
	}

	return convert.LocationsToCore(locations), nil
}

// Seed inserts markers that do not yet exist. Used to populate a fresh
// database from a memory snapshot.
func (b *Backend) Seed(ctx context.Context, markers []core.LocationMarker) error {
	for _, m := range markers {
		loc := convert.CoreToLocation(m)
		err := b.db.WithContext(ctx).
			Where(model.Location{Model: gorm.Model{ID: loc.ID}}).
			FirstOrCreate(&loc).Error
		if err != nil {
			return fmt.Errorf("seeding location %d: %w", m.ID, err)
		}
	}
	return nil
}
