package domain

// ChangeKind identifies which part of the signal chain a Change touched.
type ChangeKind string

const (
	ChangeEqualizer  ChangeKind = "equalizer"
	ChangeCompressor ChangeKind = "compressor"
	ChangeSpatial    ChangeKind = "spatial"
	ChangeRate       ChangeKind = "rate"
	ChangeVolume     ChangeKind = "volume"
)

// Change is delivered to graph subscribers whenever a control parameter is
// updated. Band is only meaningful for equalizer changes, and is -1 when a
// preset replaced all bands at once.
type Change struct {
	Kind ChangeKind
	Band int
}

// Analysis is a point-in-time snapshot of the analysis tap: magnitude
// spectrum bins and the most recent time-domain samples.
type Analysis struct {
	Frequency []float64 `json:"frequency"`
	Waveform  []float64 `json:"waveform"`
}
