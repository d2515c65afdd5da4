package infrastructure

import (
	"sync"

	"github.com/mlvaren/tonic/internal/modules/mixer/application/ports"
	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

// FeatureCache is the session-lifetime cache in front of an extractor.
// The first writer for a track id wins; concurrent extraction of the same
// track discards all but one result, so a session's vectors never change
// under a caller.
type FeatureCache struct {
	extractor ports.FeatureExtractor
	vectors   sync.Map // domain.TrackID -> domain.FeatureVector
}

// Ensure FeatureCache implements FeatureProvider.
var _ ports.FeatureProvider = (*FeatureCache)(nil)

// NewFeatureCache creates a FeatureCache over the given extractor.
func NewFeatureCache(extractor ports.FeatureExtractor) *FeatureCache {
	return &FeatureCache{extractor: extractor}
}

// VectorFor returns the cached vector, extracting on first request.
func (c *FeatureCache) VectorFor(track domain.Track) domain.FeatureVector {
	if v, ok := c.vectors.Load(track.ID); ok {
		return v.(domain.FeatureVector)
	}

	extracted := c.extractor.Extract(track)
	v, _ := c.vectors.LoadOrStore(track.ID, extracted)
	return v.(domain.FeatureVector)
}

// Lookup returns the cached vector without extracting.
func (c *FeatureCache) Lookup(id domain.TrackID) (domain.FeatureVector, bool) {
	v, ok := c.vectors.Load(id)
	if !ok {
		return domain.FeatureVector{}, false
	}
	return v.(domain.FeatureVector), true
}

// Len returns the number of cached vectors (for testing/monitoring).
func (c *FeatureCache) Len() int {
	n := 0
	c.vectors.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
