package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/config"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/directory/memory"
)

// Compile-time interface check
var _ Source = (*memory.Backend)(nil)

func TestNewSource_Memory(t *testing.T) {
	src, err := NewSource(config.StorageConfig{Type: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, src)
}

func TestNewSource_DatabaseRequiresConnection(t *testing.T) {
	_, err := NewSource(config.StorageConfig{Type: "sqlite"}, nil)
	assert.Error(t, err)
}

func TestNewSource_UnknownType(t *testing.T) {
	_, err := NewSource(config.StorageConfig{Type: "carrier-pigeon"}, nil)
	assert.Error(t, err)
}
