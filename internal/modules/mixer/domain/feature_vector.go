package domain

import "math"

// Plausible tempo range for the heuristic extractor, in BPM.
const (
	MinTempo = 40.0
	MaxTempo = 220.0
)

// FeatureVector is a track's numeric sonic-character summary. Every field
// except Tempo lives in [0,1]; Tempo is a BPM value.
type FeatureVector struct {
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Danceability float64 `json:"danceability"`
	Acousticness float64 `json:"acousticness"`
	Tempo        float64 `json:"tempo"`
}

// Clamped returns a copy with unit fields forced into [0,1] and tempo into
// the plausible BPM range.
func (v FeatureVector) Clamped() FeatureVector {
	v.Energy = clampUnit(v.Energy)
	v.Valence = clampUnit(v.Valence)
	v.Danceability = clampUnit(v.Danceability)
	v.Acousticness = clampUnit(v.Acousticness)
	v.Tempo = math.Min(MaxTempo, math.Max(MinTempo, v.Tempo))
	return v
}

// Similarity returns the mean of five per-feature similarities in [0,1].
// The tempo difference is scaled down by 60 BPM before comparison so it
// weighs in on the same scale as the unit features.
func (v FeatureVector) Similarity(other FeatureVector) float64 {
	sum := similarity(v.Energy, other.Energy) +
		similarity(v.Valence, other.Valence) +
		similarity(v.Danceability, other.Danceability) +
		similarity(v.Acousticness, other.Acousticness) +
		similarity(v.Tempo/60, other.Tempo/60)
	return sum / 5
}

func similarity(a, b float64) float64 {
	return 1 - math.Abs(a-b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
