package domain

// CompressorSettings holds the dynamics compressor parameters.
type CompressorSettings struct {
	ThresholdDB float64 `json:"thresholdDb" yaml:"threshold_db"`
	KneeDB      float64 `json:"kneeDb"      yaml:"knee_db"`
	Ratio       float64 `json:"ratio"       yaml:"ratio"`
	AttackSec   float64 `json:"attack"      yaml:"attack"`
	ReleaseSec  float64 `json:"release"     yaml:"release"`
}

// DefaultCompressor returns a gentle mastering-style starting point.
func DefaultCompressor() CompressorSettings {
	return CompressorSettings{
		ThresholdDB: -24,
		KneeDB:      30,
		Ratio:       12,
		AttackSec:   0.003,
		ReleaseSec:  0.25,
	}
}

// Clamped returns a copy with every field forced into its valid range.
// Out-of-range input is clamped, never rejected.
func (s CompressorSettings) Clamped() CompressorSettings {
	s.ThresholdDB = clamp(s.ThresholdDB, -100, 0)
	s.KneeDB = clamp(s.KneeDB, 0, 40)
	s.Ratio = clamp(s.Ratio, 1, 20)
	s.AttackSec = clamp(s.AttackSec, 0, 1)
	s.ReleaseSec = clamp(s.ReleaseSec, 0, 1)
	return s
}

// SpatialSettings holds the spatial panner parameters.
type SpatialSettings struct {
	Enabled       bool    `json:"enabled"       yaml:"enabled"`
	RolloffFactor float64 `json:"rolloffFactor" yaml:"rolloff_factor"`
}

// Clamped returns a copy with the rolloff factor forced non-negative.
func (s SpatialSettings) Clamped() SpatialSettings {
	if s.RolloffFactor < 0 {
		s.RolloffFactor = 0
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
