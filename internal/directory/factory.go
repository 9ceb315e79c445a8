// internal/directory/factory.go
package directory

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/config"
	gormdirectory "github.com/F3-Nation/f3-nation-map-sub001/internal/directory/gorm"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/directory/memory"
)

// NewSource creates a directory source based on configuration. The db
// handle is only required for the database-backed types.
func NewSource(cfg config.StorageConfig, db *gorm.DB) (Source, error) {
	switch cfg.Type {
	case "postgres", "sqlite", "database":
		if db == nil {
			return nil, fmt.Errorf("storage type %s requires a database connection", cfg.Type)
		}
		return gormdirectory.New(db), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
