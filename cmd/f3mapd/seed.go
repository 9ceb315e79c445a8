package main

import (
	"context"
	"fmt"
	"time"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/config"
	gormdirectory "github.com/F3-Nation/f3-nation-map-sub001/internal/directory/gorm"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/directory/memory"
)

// seedDatabase loads location markers from a JSON seed file and upserts
// them into the configured database. Re-running with the same file is
// safe, existing locations are matched by ID.
func seedDatabase(path string) error {
	if DBManager.DB == nil {
		if err := DBManager.Connect(); err != nil {
			return err
		}
		if err := DBManager.Setup(); err != nil {
			return err
		}
	}

	src := memory.New(config.MemoryConfig{SeedFile: path})
	if err := src.Init(); err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	markers, err := src.GetAllLocationMarkers(ctx)
	if err != nil {
		return err
	}
	if len(markers) == 0 {
		return fmt.Errorf("seed file %s contains no locations", path)
	}

	backend := gormdirectory.New(DBManager.DB)
	if err := backend.Init(); err != nil {
		return err
	}
	if err := backend.Seed(ctx, markers); err != nil {
		return err
	}

	Logger.Info("Seeded directory", "locations", len(markers), "file", path)
	return nil
}
