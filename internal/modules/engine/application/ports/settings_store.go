package ports

import "github.com/mlvaren/tonic/internal/modules/engine/domain"

// GraphSettings is the persisted signal-chain configuration: the ordered
// band gain array (keyed by the fixed frequency list) plus effect settings.
type GraphSettings struct {
	Gains      [domain.NumBands]float64
	Compressor domain.CompressorSettings
	Spatial    domain.SpatialSettings
}

// SettingsStore persists GraphSettings for the settings collaborator.
type SettingsStore interface {
	Load() (GraphSettings, error)
	Save(settings GraphSettings) error
}
