package dsp

import "time"

// gainNode is the master gain stage with a linear per-sample ramp so volume
// changes and fades never step audibly.
type gainNode struct {
	sampleRate float64

	current   float64
	target    float64
	inc       float64
	remaining int
}

func newGainNode(sampleRate, volume float64) *gainNode {
	return &gainNode{sampleRate: sampleRate, current: volume, target: volume}
}

// setVolume starts a ramp from the current value to target over fade.
func (n *gainNode) setVolume(target float64, fade time.Duration) {
	n.target = target
	frames := int(fade.Seconds() * n.sampleRate)
	if frames <= 0 {
		n.current = target
		n.remaining = 0
		n.inc = 0
		return
	}
	n.remaining = frames
	n.inc = (target - n.current) / float64(frames)
}

func (n *gainNode) process(buf []float64) {
	for i := 0; i+1 < len(buf); i += 2 {
		if n.remaining > 0 {
			n.current += n.inc
			n.remaining--
			if n.remaining == 0 {
				n.current = n.target
			}
		}
		buf[i] *= n.current
		buf[i+1] *= n.current
	}
}
