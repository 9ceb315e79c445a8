package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// MemoryConfig holds settings for the in-memory/JSON directory backend.
type MemoryConfig struct {
	SeedFile string `json:"seedFile" mapstructure:"seedFile"`
}

// StorageConfig selects and configures the directory backend.
type StorageConfig struct {
	Type   string `json:"type" mapstructure:"type"`
	Memory MemoryConfig
}

// MapConfig holds the viewport defaults and thresholds.
type MapConfig struct {
	DefaultLat  float64
	DefaultLng  float64
	DefaultZoom float64
	// CloseZoom is the zoom threshold at or above which marker
	// interactions are treated as precise (no debounce).
	CloseZoom float64
}

// SelectionConfig holds the hover-selection debounce tuning. The delay is a
// product-tuning value, configurable rather than semantic.
type SelectionConfig struct {
	Debounce time.Duration
}

// SearchConfig holds the text search caps.
type SearchConfig struct {
	MinQueryLength int
	LocalLimit     int
	SourceLimit    int
	DisplayLimit   int
	CompactLimit   int
}

// PlacesConfig points at the external places-autocomplete collaborator.
type PlacesConfig struct {
	BaseURL string
	APIKey  string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./f3maplogs")
	viper.SetDefault("stateFile", "./f3map_view.json")

	viper.SetDefault("map.defaultCenter.lat", 37.0902)
	viper.SetDefault("map.defaultCenter.lng", -95.7129)
	viper.SetDefault("map.defaultZoom", 4)
	viper.SetDefault("map.closeZoom", 10)

	viper.SetDefault("selection.debounce", "250ms")

	viper.SetDefault("search.minQueryLength", 2)
	viper.SetDefault("search.localLimit", 5)
	viper.SetDefault("search.sourceLimit", 20)
	viper.SetDefault("search.displayLimit", 30)
	viper.SetDefault("search.compactLimit", 15)

	viper.SetDefault("places.baseUrl", "http://localhost:8081")
	viper.SetDefault("places.apiKey", "")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.seedFile", "./directory.json")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "f3map")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "f3map-metrics")

	viper.SetConfigName("f3map.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the directory backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			SeedFile: viper.GetString("storage.memory.seedFile"),
		},
	}
}

// GetMapConfig returns the viewport defaults.
func GetMapConfig() MapConfig {
	return MapConfig{
		DefaultLat:  viper.GetFloat64("map.defaultCenter.lat"),
		DefaultLng:  viper.GetFloat64("map.defaultCenter.lng"),
		DefaultZoom: viper.GetFloat64("map.defaultZoom"),
		CloseZoom:   viper.GetFloat64("map.closeZoom"),
	}
}

// GetSelectionConfig returns the selection debounce tuning.
func GetSelectionConfig() SelectionConfig {
	return SelectionConfig{
		Debounce: viper.GetDuration("selection.debounce"),
	}
}

// GetSearchConfig returns the text search caps.
func GetSearchConfig() SearchConfig {
	return SearchConfig{
		MinQueryLength: viper.GetInt("search.minQueryLength"),
		LocalLimit:     viper.GetInt("search.localLimit"),
		SourceLimit:    viper.GetInt("search.sourceLimit"),
		DisplayLimit:   viper.GetInt("search.displayLimit"),
		CompactLimit:   viper.GetInt("search.compactLimit"),
	}
}

// GetPlacesConfig returns the places collaborator settings.
func GetPlacesConfig() PlacesConfig {
	return PlacesConfig{
		BaseURL: viper.GetString("places.baseUrl"),
		APIKey:  viper.GetString("places.apiKey"),
	}
}
