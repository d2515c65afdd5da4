package usecases

import "errors"

// Errors surfaced by the graph service.
var (
	// ErrUnsupportedPlatform is returned when no host audio-graph capability
	// is available. Callers must fall back to unprocessed playback instead of
	// failing playback entirely.
	ErrUnsupportedPlatform = errors.New("audio graph capability unavailable on this platform")

	// ErrTornDown is returned by Initialize when Teardown won a race against
	// it; the caller must initialize again to rebuild from scratch.
	ErrTornDown = errors.New("graph torn down during initialization")

	// ErrNotInitialized is returned when an operation needs a built graph.
	ErrNotInitialized = errors.New("audio graph not initialized")

	// ErrUnknownPreset is returned for preset names without a gain table.
	ErrUnknownPreset = errors.New("unknown equalizer preset")

	// ErrNilSource is returned when Initialize is handed no source.
	ErrNilSource = errors.New("nil audio source")
)
