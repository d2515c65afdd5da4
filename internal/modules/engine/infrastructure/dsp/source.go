// Package dsp implements the native audio-graph backend: a pull-based
// render loop that drives decoded PCM through equalizer, compressor, reverb,
// panner and master-gain stages into an output sink.
package dsp

// PCMSource is a fully decoded, interleaved stereo PCM buffer in [-1, 1].
// It is the source kind the native backend can play.
type PCMSource struct {
	id         string
	sampleRate int
	samples    []float64
}

// NewPCMSource wraps interleaved stereo samples as a graph source.
func NewPCMSource(id string, sampleRate int, samples []float64) *PCMSource {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	// Drop a trailing half frame so the buffer is always whole frames.
	if len(samples)%2 != 0 {
		samples = samples[:len(samples)-1]
	}
	return &PCMSource{id: id, sampleRate: sampleRate, samples: samples}
}

// ID uniquely identifies the decoded stream.
func (s *PCMSource) ID() string { return s.id }

// SampleRate returns the source sample rate in Hz.
func (s *PCMSource) SampleRate() int { return s.sampleRate }

// Frames returns the number of stereo frames in the buffer.
func (s *PCMSource) Frames() int { return len(s.samples) / 2 }

// resampler reads frames from a PCMSource at a variable rate using linear
// interpolation. Speed and pitch share this single rate parameter.
type resampler struct {
	pos float64
}

// read fills out (interleaved stereo) from src advancing rate source frames
// per output frame. Returns the number of output frames produced; zero means
// the source is exhausted.
func (r *resampler) read(src *PCMSource, out []float64, rate float64) int {
	if rate <= 0 {
		rate = 1
	}
	frames := len(out) / 2
	last := src.Frames() - 1
	n := 0
	for i := 0; i < frames; i++ {
		i0 := int(r.pos)
		if i0 >= last {
			break
		}
		frac := r.pos - float64(i0)
		out[2*i] = src.samples[2*i0]*(1-frac) + src.samples[2*(i0+1)]*frac
		out[2*i+1] = src.samples[2*i0+1]*(1-frac) + src.samples[2*(i0+1)+1]*frac
		r.pos += rate
		n++
	}
	return n
}
