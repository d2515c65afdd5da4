package ports

import "github.com/mlvaren/tonic/internal/modules/mixer/domain"

// FeatureExtractor derives a feature vector for a track. Implementations
// must be stateless and must never fail: bad or missing metadata falls back
// to a default vector.
//
// The heuristic implementation is randomized, so callers are required to
// compute a track's vector once and cache it for the session.
type FeatureExtractor interface {
	Extract(track domain.Track) domain.FeatureVector
}

// FeatureProvider is the session cache in front of a FeatureExtractor.
type FeatureProvider interface {
	// VectorFor returns the cached vector for the track, computing and
	// caching it on first request.
	VectorFor(track domain.Track) domain.FeatureVector

	// Lookup returns the cached vector without computing one.
	Lookup(id domain.TrackID) (domain.FeatureVector, bool)
}
