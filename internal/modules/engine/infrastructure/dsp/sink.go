package dsp

import (
	"encoding/binary"
	"io"
	"math"
	"time"
)

// Sink consumes processed, interleaved stereo samples. WriteSamples may
// block to pace rendering at the playback rate, the way a real output
// device would. The render loop relies on that backpressure.
type Sink interface {
	WriteSamples(samples []float64) error
}

// NullSink discards samples while pacing the render loop in real time. It is
// what the serve path uses when no output device is wired up.
type NullSink struct {
	SampleRate int
}

func (s NullSink) WriteSamples(samples []float64) error {
	rate := s.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	frames := len(samples) / 2
	time.Sleep(time.Duration(float64(frames) / float64(rate) * float64(time.Second)))
	return nil
}

// WriterSink encodes samples as 16-bit little-endian stereo PCM into an
// io.Writer, suitable for piping into aplay/sox or writing raw captures.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) WriteSamples(samples []float64) error {
	out := make([]byte, len(samples)*2)
	for i, sample := range samples {
		v := math.Max(-1, math.Min(1, sample))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v*32767)))
	}
	_, err := s.W.Write(out)
	return err
}
