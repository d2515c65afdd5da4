package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

func TestStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "audio.yaml"))

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, [domain.NumBands]float64{}, settings.Gains)
	assert.Equal(t, domain.DefaultCompressor(), settings.Compressor)
	assert.False(t, settings.Spatial.Enabled)
}

func TestStore_SaveThenLoadRoundTrips(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "audio.yaml"))

	saved := ports.GraphSettings{
		Gains:      [domain.NumBands]float64{0, 0, 0, 0, 0, 0, 0, 2, 4, 6},
		Compressor: domain.CompressorSettings{ThresholdDB: -30, KneeDB: 10, Ratio: 4, AttackSec: 0.01, ReleaseSec: 0.5},
		Spatial:    domain.SpatialSettings{Enabled: true, RolloffFactor: 2},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestStore_LoadClampsHandEditedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.yaml")
	content := `
equalizer:
  gains: [99, -99, 0, 0, 0, 0, 0, 0, 0, 0]
compressor:
  threshold_db: -500
  knee_db: 80
  ratio: 100
  attack: 5
  release: -1
spatial:
  enabled: true
  rolloff_factor: -3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := NewStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.MaxGainDB, settings.Gains[0])
	assert.Equal(t, domain.MinGainDB, settings.Gains[1])
	assert.Equal(t, -100.0, settings.Compressor.ThresholdDB)
	assert.Equal(t, 40.0, settings.Compressor.KneeDB)
	assert.Equal(t, 20.0, settings.Compressor.Ratio)
	assert.Equal(t, 1.0, settings.Compressor.AttackSec)
	assert.Equal(t, 0.0, settings.Compressor.ReleaseSec)
	assert.GreaterOrEqual(t, settings.Spatial.RolloffFactor, 0.0)
}

func TestStore_LoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("equalizer: ["), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestStore_WatchSeesExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.yaml")
	store := NewStore(path)
	require.NoError(t, store.Save(ports.GraphSettings{Compressor: domain.DefaultCompressor()}))

	changed := make(chan ports.GraphSettings, 4)
	stop, err := store.Watch(func(s ports.GraphSettings) { changed <- s })
	require.NoError(t, err)
	defer stop()

	edited := ports.GraphSettings{
		Gains:      [domain.NumBands]float64{6, 4, 2, 0, 0, 0, 0, 0, 0, 0},
		Compressor: domain.DefaultCompressor(),
		Spatial:    domain.SpatialSettings{RolloffFactor: 1},
	}
	require.NoError(t, store.Save(edited))

	select {
	case got := <-changed:
		assert.Equal(t, edited.Gains, got.Gains)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never reported the edit")
	}
}
