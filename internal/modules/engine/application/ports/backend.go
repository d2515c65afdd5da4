package ports

import (
	"context"
	"errors"
	"time"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// ErrAnalysisUnsupported is returned from AnalysisSnapshot by chains whose
// backend cannot expose sample data.
var ErrAnalysisUnsupported = errors.New("analysis snapshot not supported by this backend")

// Source is a decoded audio source handed over by the playback transport.
// Backends type-assert to the concrete source kind they can play.
type Source interface {
	// ID uniquely identifies the underlying decoded stream.
	ID() string
}

// Chain is an assembled signal chain on a host audio backend:
// source -> equalizer -> compressor -> reverb -> panner -> master gain ->
// analysis tap -> output.
//
// Apply methods are control-plane calls: they must not block on the audio
// processing thread. Changes take effect at the next processing quantum.
type Chain interface {
	// ApplyEqualizer sets all band gains, ramped over the given interval.
	ApplyEqualizer(gains [domain.NumBands]float64, ramp time.Duration)

	// ApplyCompressor reconfigures the dynamics compressor stage.
	ApplyCompressor(settings domain.CompressorSettings)

	// ApplySpatial toggles and reconfigures the spatial panner stage.
	ApplySpatial(settings domain.SpatialSettings)

	// ApplyRate sets the effective resample rate.
	ApplyRate(rate float64)

	// ApplyVolume ramps the master gain to volume over fade.
	ApplyVolume(volume float64, fade time.Duration)

	// AnalysisSnapshot returns the current analysis tap contents.
	AnalysisSnapshot() (domain.Analysis, error)

	// Close releases every node in the chain.
	Close() error
}

// Backend is a host audio capability able to build signal chains.
type Backend interface {
	BuildChain(ctx context.Context, source Source) (Chain, error)
}
