package dsp

import (
	"math"
	"time"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// eqNode is the 10-filter equalizer stage: one biquad per band per channel,
// band 0 as low shelf, band 9 as high shelf, the rest peaking.
//
// Gain changes are ramped block by block toward their target so a large jump
// never lands inside a single processing quantum.
type eqNode struct {
	sampleRate  float64
	blockFrames int

	filters [domain.NumBands][2]biquad
	current [domain.NumBands]float64
	target  [domain.NumBands]float64
	step    [domain.NumBands]float64
}

const peakingQ = 1.0

func newEQNode(sampleRate float64, blockFrames int) *eqNode {
	n := &eqNode{sampleRate: sampleRate, blockFrames: blockFrames}
	for band := range n.filters {
		n.configureBand(band, 0)
	}
	return n
}

// setGains installs new targets, ramped over the given interval.
func (n *eqNode) setGains(gains [domain.NumBands]float64, ramp time.Duration) {
	blocks := 1.0
	if ramp > 0 {
		blockDur := float64(n.blockFrames) / n.sampleRate
		blocks = math.Max(1, ramp.Seconds()/blockDur)
	}
	for band, g := range gains {
		n.target[band] = g
		n.step[band] = (g - n.current[band]) / blocks
	}
}

// advance moves every band one ramp step and recomputes touched filters.
// Called once per block from the render loop.
func (n *eqNode) advance() {
	for band := range n.current {
		if n.current[band] == n.target[band] {
			continue
		}
		next := n.current[band] + n.step[band]
		if (n.step[band] > 0 && next >= n.target[band]) ||
			(n.step[band] < 0 && next <= n.target[band]) ||
			n.step[band] == 0 {
			next = n.target[band]
		}
		n.configureBand(band, next)
	}
}

func (n *eqNode) configureBand(band int, gainDB float64) {
	n.current[band] = gainDB
	freq := domain.BandFrequencies[band]
	for ch := 0; ch < 2; ch++ {
		switch domain.BandTypeOf(band) {
		case domain.BandLowShelf:
			n.filters[band][ch].lowShelf(n.sampleRate, freq, gainDB)
		case domain.BandHighShelf:
			n.filters[band][ch].highShelf(n.sampleRate, freq, gainDB)
		default:
			n.filters[band][ch].peaking(n.sampleRate, freq, gainDB, peakingQ)
		}
	}
}

func (n *eqNode) process(buf []float64) {
	for i := 0; i+1 < len(buf); i += 2 {
		l, r := buf[i], buf[i+1]
		for band := range n.filters {
			l = n.filters[band][0].process(l)
			r = n.filters[band][1].process(r)
		}
		buf[i], buf[i+1] = l, r
	}
}
