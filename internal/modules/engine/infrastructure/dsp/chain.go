package dsp

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// blockFrames is the processing quantum of the render loop.
const blockFrames = 1024

// controlState is an immutable snapshot of every control-plane parameter.
// Writers build a new snapshot and swap the pointer; the render loop picks
// it up at the next block boundary. Nothing on the render path blocks on a
// control call.
type controlState struct {
	gains      [domain.NumBands]float64
	ramp       time.Duration
	compressor domain.CompressorSettings
	spatial    domain.SpatialSettings
	rate       float64
	volume     float64
	fade       time.Duration
}

// Chain is a built native signal chain:
// source -> equalizer -> compressor -> reverb -> panner -> master gain ->
// analysis tap -> sink.
type Chain struct {
	src  *PCMSource
	sink Sink

	ctl   atomic.Pointer[controlState]
	ctlMu sync.Mutex

	eq       *eqNode
	comp     *compressorNode
	rev      *reverbNode
	pan      *pannerNode
	gain     *gainNode
	analyser *analyserNode
	res      resampler

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newChain(src *PCMSource, sink Sink) *Chain {
	sr := float64(src.SampleRate())
	c := &Chain{
		src:      src,
		sink:     sink,
		eq:       newEQNode(sr, blockFrames),
		comp:     newCompressorNode(sr, domain.DefaultCompressor()),
		rev:      newReverbNode(sr),
		pan:      newPannerNode(sr, domain.SpatialSettings{}),
		gain:     newGainNode(sr, 1),
		analyser: newAnalyserNode(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	c.ctl.Store(&controlState{
		compressor: domain.DefaultCompressor(),
		rate:       1,
		volume:     1,
	})
	return c
}

// update copies the current control state, mutates the copy and swaps it in.
func (c *Chain) update(mutate func(*controlState)) {
	c.ctlMu.Lock()
	next := *c.ctl.Load()
	mutate(&next)
	c.ctl.Store(&next)
	c.ctlMu.Unlock()
}

// ApplyEqualizer sets all band gains, ramped over the given interval.
func (c *Chain) ApplyEqualizer(gains [domain.NumBands]float64, ramp time.Duration) {
	c.update(func(s *controlState) {
		s.gains = gains
		s.ramp = ramp
	})
}

// ApplyCompressor reconfigures the compressor stage.
func (c *Chain) ApplyCompressor(settings domain.CompressorSettings) {
	c.update(func(s *controlState) { s.compressor = settings })
}

// ApplySpatial reconfigures the spatial panner stage.
func (c *Chain) ApplySpatial(settings domain.SpatialSettings) {
	c.update(func(s *controlState) { s.spatial = settings })
}

// ApplyRate sets the effective resample rate.
func (c *Chain) ApplyRate(rate float64) {
	c.update(func(s *controlState) { s.rate = rate })
}

// ApplyVolume ramps the master gain to volume over fade.
func (c *Chain) ApplyVolume(volume float64, fade time.Duration) {
	c.update(func(s *controlState) {
		s.volume = volume
		s.fade = fade
	})
}

// AnalysisSnapshot returns the analysis tap contents. No side effects.
func (c *Chain) AnalysisSnapshot() (domain.Analysis, error) {
	return c.analyser.snapshot(), nil
}

// Done is closed when the render loop exits, whether stopped, exhausted or
// failed. Lets offline callers wait for the source to drain.
func (c *Chain) Done() <-chan struct{} {
	return c.done
}

// Close stops the render loop and waits for it to exit. Safe to call more
// than once.
func (c *Chain) Close() error {
	c.closeOnce.Do(func() { close(c.stop) })
	<-c.done
	return nil
}

// run is the render loop. It exits when stopped, when the source is
// exhausted, or when the sink fails.
func (c *Chain) run() {
	defer close(c.done)

	buf := make([]float64, 2*blockFrames)
	var applied *controlState

	for {
		select {
		case <-c.stop:
			return
		default:
		}

		ctl := c.ctl.Load()
		if ctl != applied {
			c.applyControl(applied, ctl)
			applied = ctl
		}

		n := c.res.read(c.src, buf, ctl.rate)
		if n == 0 {
			slog.Debug("audio source exhausted", "source", c.src.ID())
			return
		}

		block := buf[:2*n]
		c.eq.advance()
		c.eq.process(block)
		c.comp.process(block)
		c.rev.process(block)
		c.pan.process(block)
		c.gain.process(block)
		c.analyser.observe(block)

		if err := c.sink.WriteSamples(block); err != nil {
			slog.Warn("audio sink write failed", "error", err)
			return
		}
	}
}

// applyControl reconfigures nodes for the fields that changed between two
// control snapshots. Runs on the render loop only.
func (c *Chain) applyControl(old, next *controlState) {
	if old == nil {
		c.eq.setGains(next.gains, next.ramp)
		c.comp.setParams(next.compressor)
		c.pan.setParams(next.spatial)
		c.gain.setVolume(next.volume, next.fade)
		return
	}
	if old.gains != next.gains || old.ramp != next.ramp {
		c.eq.setGains(next.gains, next.ramp)
	}
	if old.compressor != next.compressor {
		c.comp.setParams(next.compressor)
	}
	if old.spatial != next.spatial {
		c.pan.setParams(next.spatial)
	}
	if old.volume != next.volume || old.fade != next.fade {
		c.gain.setVolume(next.volume, next.fade)
	}
}
