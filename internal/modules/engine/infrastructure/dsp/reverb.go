package dsp

// reverbNode is a small Schroeder reverberator standing in as the chain's
// convolver stage: four damped comb filters into two allpass sections per
// channel, mixed in at a fixed low wet level.
type reverbNode struct {
	combs    [2][4]comb
	allpass  [2][2]allpass
	wetLevel float64
}

const (
	reverbWet      = 0.12
	combFeedback   = 0.84
	combDamp       = 0.2
	allpassGain    = 0.5
	stereoSpreadFr = 23 // extra right-channel delay, in frames at 44.1 kHz
)

// Tuned at 44.1 kHz; scaled to the actual rate on construction.
var (
	combTunings    = [4]int{1116, 1188, 1277, 1356}
	allpassTunings = [2]int{556, 441}
)

type comb struct {
	buf      []float64
	idx      int
	feedback float64
	damp     float64
	filtered float64
}

func (c *comb) process(x float64) float64 {
	out := c.buf[c.idx]
	c.filtered = out*(1-c.damp) + c.filtered*c.damp
	c.buf[c.idx] = x + c.filtered*c.feedback
	c.idx++
	if c.idx >= len(c.buf) {
		c.idx = 0
	}
	return out
}

type allpass struct {
	buf  []float64
	idx  int
	gain float64
}

func (a *allpass) process(x float64) float64 {
	delayed := a.buf[a.idx]
	out := delayed - x
	a.buf[a.idx] = x + delayed*a.gain
	a.idx++
	if a.idx >= len(a.buf) {
		a.idx = 0
	}
	return out
}

func newReverbNode(sampleRate float64) *reverbNode {
	scale := sampleRate / 44100
	n := &reverbNode{wetLevel: reverbWet}
	for ch := 0; ch < 2; ch++ {
		spread := ch * stereoSpreadFr
		for i, tuning := range combTunings {
			size := int(float64(tuning+spread) * scale)
			n.combs[ch][i] = comb{buf: make([]float64, size), feedback: combFeedback, damp: combDamp}
		}
		for i, tuning := range allpassTunings {
			size := int(float64(tuning+spread) * scale)
			n.allpass[ch][i] = allpass{buf: make([]float64, size), gain: allpassGain}
		}
	}
	return n
}

func (n *reverbNode) process(buf []float64) {
	for i := 0; i+1 < len(buf); i += 2 {
		for ch := 0; ch < 2; ch++ {
			dry := buf[i+ch]
			wet := 0.0
			for c := range n.combs[ch] {
				wet += n.combs[ch][c].process(dry)
			}
			for a := range n.allpass[ch] {
				wet = n.allpass[ch][a].process(wet)
			}
			buf[i+ch] = dry + wet*n.wetLevel
		}
	}
}
