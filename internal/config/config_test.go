package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"map": { "closeZoom": 12 },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f3map.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 12.0, viper.GetFloat64("map.closeZoom"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f3map.cfg.json"), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./f3maplogs", viper.GetString("logsDir"))
	assert.Equal(t, 37.0902, viper.GetFloat64("map.defaultCenter.lat"))
	assert.Equal(t, -95.7129, viper.GetFloat64("map.defaultCenter.lng"))
	assert.Equal(t, 4.0, viper.GetFloat64("map.defaultZoom"))
	assert.Equal(t, 10.0, viper.GetFloat64("map.closeZoom"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./directory.json", viper.GetString("storage.memory.seedFile"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "f3map", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetSelectionConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f3map.cfg.json"), []byte(`{}`), 0644))
	require.NoError(t, Load(dir))

	sc := GetSelectionConfig()
	assert.Equal(t, 250*time.Millisecond, sc.Debounce)
}

func TestGetSearchConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"search": { "displayLimit": 10, "compactLimit": 4 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f3map.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	sc := GetSearchConfig()
	assert.Equal(t, 10, sc.DisplayLimit)
	assert.Equal(t, 4, sc.CompactLimit)
	assert.Equal(t, 2, sc.MinQueryLength)
	assert.Equal(t, 5, sc.LocalLimit)
	assert.Equal(t, 20, sc.SourceLimit)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"storage": {
			"type": "gorm",
			"memory": { "seedFile": "/tmp/seed.json" }
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f3map.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	sc := GetStorageConfig()
	assert.Equal(t, "gorm", sc.Type)
	assert.Equal(t, "/tmp/seed.json", sc.Memory.SeedFile)
}

func TestGetMapConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f3map.cfg.json"), []byte(`{}`), 0644))
	require.NoError(t, Load(dir))

	mc := GetMapConfig()
	assert.Equal(t, 37.0902, mc.DefaultLat)
	assert.Equal(t, -95.7129, mc.DefaultLng)
	assert.Equal(t, 4.0, mc.DefaultZoom)
	assert.Equal(t, 10.0, mc.CloseZoom)
}
