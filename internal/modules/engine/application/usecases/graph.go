package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// GainRampDuration is how long band-gain and volume changes are smoothed
// over to avoid audible clicks.
const GainRampDuration = 40 * time.Millisecond

// GraphService owns the audio signal chain: it holds the canonical control
// parameters, builds and tears down chains on the host backend, and notifies
// subscribers about parameter changes.
//
// All methods are safe for concurrent use from the control thread. Teardown
// always wins against an in-flight Initialize.
type GraphService struct {
	backend ports.Backend

	mu         sync.Mutex
	chain      ports.Chain
	sourceID   string
	generation uint64

	gains       [domain.NumBands]float64
	compressor  domain.CompressorSettings
	spatial     domain.SpatialSettings
	speed       float64
	pitch       float64
	pitchLocked bool
	volume      float64

	subMu   sync.Mutex
	subs    map[int]func(domain.Change)
	nextSub int
}

// NewGraphService creates a GraphService on the given backend. A nil backend
// means the platform has no audio-graph capability; control state still
// works, but Initialize reports ErrUnsupportedPlatform.
func NewGraphService(backend ports.Backend) *GraphService {
	return &GraphService{
		backend:    backend,
		compressor: domain.DefaultCompressor(),
		spatial:    domain.SpatialSettings{Enabled: false, RolloffFactor: 1},
		speed:      1,
		volume:     1,
		subs:       make(map[int]func(domain.Change)),
	}
}

// Initialize builds the signal chain for the given source. It is idempotent:
// initializing again for the same source returns the existing chain. A chain
// built for a different source is released and rebuilt.
func (g *GraphService) Initialize(ctx context.Context, source ports.Source) error {
	if source == nil {
		return ErrNilSource
	}

	g.mu.Lock()
	if g.backend == nil {
		g.mu.Unlock()
		return ErrUnsupportedPlatform
	}
	if g.chain != nil {
		if g.sourceID == source.ID() {
			g.mu.Unlock()
			return nil
		}
		// Different source: release the old chain before rebuilding.
		old := g.chain
		g.chain = nil
		g.sourceID = ""
		g.mu.Unlock()
		if err := old.Close(); err != nil {
			slog.Warn("failed to close previous signal chain", "error", err)
		}
		g.mu.Lock()
	}
	gen := g.generation
	g.mu.Unlock()

	chain, err := g.backend.BuildChain(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to build signal chain: %w", err)
	}

	g.mu.Lock()
	if g.generation != gen {
		// Teardown raced with us and wins; discard the chain we just built.
		g.mu.Unlock()
		_ = chain.Close()
		return ErrTornDown
	}
	// A concurrent Initialize may have installed a chain while we were
	// building; the one being replaced must still be released.
	displaced := g.chain
	g.chain = chain
	g.sourceID = source.ID()
	g.applyAllLocked()
	g.mu.Unlock()

	if displaced != nil {
		if err := displaced.Close(); err != nil {
			slog.Warn("failed to close displaced signal chain", "error", err)
		}
	}

	slog.Info("audio graph initialized", "source", source.ID())
	return nil
}

// Teardown releases the chain and its nodes. Safe to call in any state, any
// number of times, including concurrently with an in-flight Initialize.
func (g *GraphService) Teardown() {
	g.mu.Lock()
	g.generation++
	chain := g.chain
	g.chain = nil
	g.sourceID = ""
	g.mu.Unlock()

	if chain != nil {
		if err := chain.Close(); err != nil {
			slog.Warn("failed to close signal chain", "error", err)
		}
		slog.Info("audio graph torn down")
	}
}

// Initialized reports whether a chain is currently built.
func (g *GraphService) Initialized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chain != nil
}

// SetBandGain sets one equalizer band gain, clamped to the valid range and
// ramped over GainRampDuration. Invalid band indexes are ignored.
func (g *GraphService) SetBandGain(index int, gainDB float64) {
	if !domain.ValidBand(index) {
		slog.Warn("ignoring gain for invalid equalizer band", "band", index)
		return
	}

	g.mu.Lock()
	g.gains[index] = domain.ClampGain(gainDB)
	gains := g.gains
	chain := g.chain
	g.mu.Unlock()

	if chain != nil {
		chain.ApplyEqualizer(gains, GainRampDuration)
	}
	g.notify(domain.Change{Kind: domain.ChangeEqualizer, Band: index})
}

// ApplyPreset atomically replaces all band gains with a named preset table.
func (g *GraphService) ApplyPreset(name string) error {
	preset, ok := domain.PresetByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	g.mu.Lock()
	g.gains = [domain.NumBands]float64(preset)
	gains := g.gains
	chain := g.chain
	g.mu.Unlock()

	if chain != nil {
		chain.ApplyEqualizer(gains, GainRampDuration)
	}
	g.notify(domain.Change{Kind: domain.ChangeEqualizer, Band: -1})
	slog.Debug("applied equalizer preset", "preset", name)
	return nil
}

// BandGains returns the current gain of every band.
func (g *GraphService) BandGains() [domain.NumBands]float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gains
}

// ConfigureCompressor updates the compressor stage. Out-of-range values are
// clamped, never rejected.
func (g *GraphService) ConfigureCompressor(settings domain.CompressorSettings) {
	g.mu.Lock()
	g.compressor = settings.Clamped()
	applied := g.compressor
	chain := g.chain
	g.mu.Unlock()

	if chain != nil {
		chain.ApplyCompressor(applied)
	}
	g.notify(domain.Change{Kind: domain.ChangeCompressor})
}

// Compressor returns the currently applied compressor settings.
func (g *GraphService) Compressor() domain.CompressorSettings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.compressor
}

// ConfigureSpatial toggles the spatial panner stage and sets its rolloff.
func (g *GraphService) ConfigureSpatial(enabled bool, rolloffFactor float64) {
	g.mu.Lock()
	g.spatial = domain.SpatialSettings{Enabled: enabled, RolloffFactor: rolloffFactor}.Clamped()
	applied := g.spatial
	chain := g.chain
	g.mu.Unlock()

	if chain != nil {
		chain.ApplySpatial(applied)
	}
	g.notify(domain.Change{Kind: domain.ChangeSpatial})
}

// Spatial returns the currently applied spatial settings.
func (g *GraphService) Spatial() domain.SpatialSettings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spatial
}

// SetSpeed sets the playback speed, clamped to [0.5, 2.0].
func (g *GraphService) SetSpeed(rate float64) {
	g.mu.Lock()
	g.speed = domain.ClampSpeed(rate)
	g.pushRateLocked()
	g.mu.Unlock()
	g.notify(domain.Change{Kind: domain.ChangeRate})
}

// SetPitchShift sets the pitch shift in semitones, clamped to [-12, +12].
func (g *GraphService) SetPitchShift(semitones float64) {
	g.mu.Lock()
	g.pitch = domain.ClampPitch(semitones)
	g.pushRateLocked()
	g.mu.Unlock()
	g.notify(domain.Change{Kind: domain.ChangeRate})
}

// SetPitchLocked engages or releases the pitch lock. While locked, speed
// changes do not alter the resampling-derived pitch ratio.
func (g *GraphService) SetPitchLocked(locked bool) {
	g.mu.Lock()
	g.pitchLocked = locked
	g.pushRateLocked()
	g.mu.Unlock()
	g.notify(domain.Change{Kind: domain.ChangeRate})
}

// EffectiveRate returns the resample rate currently applied to the source.
func (g *GraphService) EffectiveRate() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.EffectiveRate(g.speed, g.pitch, g.pitchLocked)
}

// Speed returns the current playback speed.
func (g *GraphService) Speed() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speed
}

// PitchShift returns the current pitch shift in semitones.
func (g *GraphService) PitchShift() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pitch
}

// PitchLocked reports whether the pitch lock is engaged.
func (g *GraphService) PitchLocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pitchLocked
}

// SetMasterVolume ramps the master gain to v (clamped to [0,1]) over
// fadeSeconds.
func (g *GraphService) SetMasterVolume(v float64, fadeSeconds float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if fadeSeconds < 0 {
		fadeSeconds = 0
	}

	g.mu.Lock()
	g.volume = v
	chain := g.chain
	g.mu.Unlock()

	if chain != nil {
		chain.ApplyVolume(v, time.Duration(fadeSeconds*float64(time.Second)))
	}
	g.notify(domain.Change{Kind: domain.ChangeVolume})
}

// MasterVolume returns the current master volume.
func (g *GraphService) MasterVolume() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volume
}

// AnalysisSnapshot returns the current frequency and time-domain sample
// arrays from the analysis tap. It has no side effects.
func (g *GraphService) AnalysisSnapshot() (domain.Analysis, error) {
	g.mu.Lock()
	chain := g.chain
	g.mu.Unlock()

	if chain == nil {
		return domain.Analysis{}, ErrNotInitialized
	}
	return chain.AnalysisSnapshot()
}

// Subscribe registers a callback fired after every parameter change. The
// returned function removes the subscription and is safe to call more than
// once.
func (g *GraphService) Subscribe(fn func(domain.Change)) func() {
	g.subMu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.subMu.Unlock()

	return func() {
		g.subMu.Lock()
		delete(g.subs, id)
		g.subMu.Unlock()
	}
}

// Settings returns the persistable part of the control state.
func (g *GraphService) Settings() ports.GraphSettings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ports.GraphSettings{
		Gains:      g.gains,
		Compressor: g.compressor,
		Spatial:    g.spatial,
	}
}

// ApplySettings restores persisted control state in one step.
func (g *GraphService) ApplySettings(s ports.GraphSettings) {
	g.mu.Lock()
	for i := range s.Gains {
		g.gains[i] = domain.ClampGain(s.Gains[i])
	}
	g.compressor = s.Compressor.Clamped()
	g.spatial = s.Spatial.Clamped()
	gains := g.gains
	compressor := g.compressor
	spatial := g.spatial
	chain := g.chain
	g.mu.Unlock()

	if chain != nil {
		chain.ApplyEqualizer(gains, GainRampDuration)
		chain.ApplyCompressor(compressor)
		chain.ApplySpatial(spatial)
	}
	g.notify(domain.Change{Kind: domain.ChangeEqualizer, Band: -1})
}

// applyAllLocked pushes the full control state onto a freshly built chain.
// Callers hold mu and guarantee chain is non-nil.
func (g *GraphService) applyAllLocked() {
	g.chain.ApplyEqualizer(g.gains, GainRampDuration)
	g.chain.ApplyCompressor(g.compressor)
	g.chain.ApplySpatial(g.spatial)
	g.chain.ApplyRate(domain.EffectiveRate(g.speed, g.pitch, g.pitchLocked))
	g.chain.ApplyVolume(g.volume, 0)
}

// pushRateLocked forwards the effective rate to the chain. Callers hold mu.
func (g *GraphService) pushRateLocked() {
	if g.chain != nil {
		g.chain.ApplyRate(domain.EffectiveRate(g.speed, g.pitch, g.pitchLocked))
	}
}

// notify invokes subscribers outside of any state lock.
func (g *GraphService) notify(change domain.Change) {
	g.subMu.Lock()
	fns := make([]func(domain.Change), 0, len(g.subs))
	for _, fn := range g.subs {
		fns = append(fns, fn)
	}
	g.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
