package infrastructure

import (
	"math/rand"
	"strings"

	"github.com/mlvaren/tonic/internal/modules/mixer/application/ports"
	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

// genreBucket is a base feature vector for a family of genres.
type genreBucket struct {
	keywords []string
	base     domain.FeatureVector
}

// Buckets are checked in order; the first keyword hit wins.
var genreBuckets = []genreBucket{
	{
		keywords: []string{"electronic", "edm", "techno", "house"},
		base:     domain.FeatureVector{Energy: 0.8, Valence: 0.6, Danceability: 0.85, Acousticness: 0.1, Tempo: 125},
	},
	{
		keywords: []string{"rock", "metal", "punk"},
		base:     domain.FeatureVector{Energy: 0.85, Valence: 0.55, Danceability: 0.5, Acousticness: 0.15, Tempo: 135},
	},
	{
		keywords: []string{"classical", "ambient"},
		base:     domain.FeatureVector{Energy: 0.2, Valence: 0.45, Danceability: 0.2, Acousticness: 0.9, Tempo: 80},
	},
	{
		keywords: []string{"jazz", "blues"},
		base:     domain.FeatureVector{Energy: 0.4, Valence: 0.6, Danceability: 0.5, Acousticness: 0.75, Tempo: 100},
	},
	{
		keywords: []string{"pop"},
		base:     domain.FeatureVector{Energy: 0.65, Valence: 0.7, Danceability: 0.7, Acousticness: 0.3, Tempo: 115},
	},
}

// defaultBucket backs tracks with missing or unrecognized genre metadata.
var defaultBucket = domain.FeatureVector{Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5, Tempo: 110}

// Jitter bounds: unit features move up to +-0.1, tempo up to +-20 BPM.
const (
	unitJitter  = 0.1
	tempoJitter = 20.0
)

// HeuristicExtractor derives feature vectors from genre keywords plus
// bounded random jitter. It is deliberately unseeded, so repeated extraction
// of the same track differs; callers cache the first vector per track.
type HeuristicExtractor struct{}

// Ensure HeuristicExtractor implements FeatureExtractor.
var _ ports.FeatureExtractor = HeuristicExtractor{}

func NewHeuristicExtractor() HeuristicExtractor {
	return HeuristicExtractor{}
}

// Extract never fails: unknown genres fall back to the default bucket.
func (HeuristicExtractor) Extract(track domain.Track) domain.FeatureVector {
	base := bucketFor(track.Genre)

	v := domain.FeatureVector{
		Energy:       base.Energy + jitter(unitJitter),
		Valence:      base.Valence + jitter(unitJitter),
		Danceability: base.Danceability + jitter(unitJitter),
		Acousticness: base.Acousticness + jitter(unitJitter),
		Tempo:        base.Tempo + jitter(tempoJitter),
	}
	return v.Clamped()
}

func bucketFor(genre string) domain.FeatureVector {
	if genre == "" {
		return defaultBucket
	}

	lower := strings.ToLower(genre)
	for _, bucket := range genreBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lower, keyword) {
				return bucket.base
			}
		}
	}
	return defaultBucket
}

// jitter returns a uniform value in [-bound, bound].
func jitter(bound float64) float64 {
	return (rand.Float64()*2 - 1) * bound
}
