package dsp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
)

// Compile-time check that Backend implements ports.Backend.
var _ ports.Backend = (*Backend)(nil)

// ErrNoSink is returned when the backend was constructed without an output.
var ErrNoSink = errors.New("dsp: no output sink configured")

// Backend builds native signal chains that render into a shared sink.
type Backend struct {
	sink Sink

	mu   sync.Mutex
	last *Chain
}

// NewBackend creates the native backend. The sink is shared by every chain
// the backend builds and stays open across chain teardowns.
func NewBackend(sink Sink) *Backend {
	return &Backend{sink: sink}
}

// BuildChain assembles the chain for a decoded PCM source and starts its
// render loop.
func (b *Backend) BuildChain(_ context.Context, source ports.Source) (ports.Chain, error) {
	if b.sink == nil {
		return nil, ErrNoSink
	}
	src, ok := source.(*PCMSource)
	if !ok {
		return nil, fmt.Errorf("dsp: unsupported source type %T", source)
	}

	chain := newChain(src, b.sink)
	b.mu.Lock()
	b.last = chain
	b.mu.Unlock()
	go chain.run()
	return chain, nil
}

// LastChain returns the most recently built chain, or nil if none was built
// yet. Offline renderers use it to wait for the source to drain.
func (b *Backend) LastChain() *Chain {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}
