package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

type fakeSource struct {
	id string
}

func (s *fakeSource) ID() string { return s.id }

// fakeChain records every control-plane call.
type fakeChain struct {
	mu sync.Mutex

	gains      [domain.NumBands]float64
	ramps      []time.Duration
	compressor domain.CompressorSettings
	spatial    domain.SpatialSettings
	rate       float64
	volume     float64
	fades      []time.Duration
	closed     int
	analysis   domain.Analysis
}

func (c *fakeChain) ApplyEqualizer(gains [domain.NumBands]float64, ramp time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gains = gains
	c.ramps = append(c.ramps, ramp)
}

func (c *fakeChain) ApplyCompressor(settings domain.CompressorSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compressor = settings
}

func (c *fakeChain) ApplySpatial(settings domain.SpatialSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spatial = settings
}

func (c *fakeChain) ApplyRate(rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = rate
}

func (c *fakeChain) ApplyVolume(volume float64, fade time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = volume
	c.fades = append(c.fades, fade)
}

func (c *fakeChain) AnalysisSnapshot() (domain.Analysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analysis, nil
}

func (c *fakeChain) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeChain) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeBackend builds fakeChains. When blockBuild is set, BuildChain waits
// until release is closed, which lets tests race Teardown against it.
type fakeBackend struct {
	mu       sync.Mutex
	chains   []*fakeChain
	buildErr error

	blockBuild bool
	building   chan struct{}
	release    chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		building: make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
}

func (b *fakeBackend) BuildChain(_ context.Context, source ports.Source) (ports.Chain, error) {
	if b.blockBuild {
		b.building <- struct{}{}
		<-b.release
	}
	if b.buildErr != nil {
		return nil, b.buildErr
	}
	if source == nil {
		return nil, errors.New("nil source")
	}

	chain := &fakeChain{}
	b.mu.Lock()
	b.chains = append(b.chains, chain)
	b.mu.Unlock()
	return chain, nil
}

func (b *fakeBackend) builtChains() []*fakeChain {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*fakeChain, len(b.chains))
	copy(out, b.chains)
	return out
}
