package dsp

import (
	"math"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// compressorNode is a feed-forward dynamics compressor with a soft knee.
// Both channels share one detector so the stereo image stays put.
type compressorNode struct {
	sampleRate float64

	thresholdDB float64
	kneeDB      float64
	ratio       float64
	attackCoef  float64
	releaseCoef float64

	envelope float64
}

func newCompressorNode(sampleRate float64, settings domain.CompressorSettings) *compressorNode {
	n := &compressorNode{sampleRate: sampleRate}
	n.setParams(settings)
	return n
}

func (n *compressorNode) setParams(settings domain.CompressorSettings) {
	n.thresholdDB = settings.ThresholdDB
	n.kneeDB = settings.KneeDB
	n.ratio = settings.Ratio
	n.attackCoef = envelopeCoef(n.sampleRate, settings.AttackSec)
	n.releaseCoef = envelopeCoef(n.sampleRate, settings.ReleaseSec)
}

// envelopeCoef converts a time constant in seconds to a one-pole smoothing
// coefficient at the given sample rate.
func envelopeCoef(sampleRate, seconds float64) float64 {
	if seconds < 1e-4 {
		seconds = 1e-4
	}
	return math.Exp(-1 / (sampleRate * seconds))
}

func (n *compressorNode) process(buf []float64) {
	for i := 0; i+1 < len(buf); i += 2 {
		level := math.Max(math.Abs(buf[i]), math.Abs(buf[i+1]))
		if level > n.envelope {
			n.envelope = n.attackCoef*n.envelope + (1-n.attackCoef)*level
		} else {
			n.envelope = n.releaseCoef*n.envelope + (1-n.releaseCoef)*level
		}

		gain := math.Pow(10, n.gainReductionDB(amplitudeToDB(n.envelope))/20)
		buf[i] *= gain
		buf[i+1] *= gain
	}
}

// gainReductionDB computes the reduction for an input level using a
// quadratic soft knee around the threshold.
func (n *compressorNode) gainReductionDB(levelDB float64) float64 {
	over := levelDB - n.thresholdDB
	switch {
	case 2*over < -n.kneeDB:
		return 0
	case n.kneeDB > 0 && 2*math.Abs(over) <= n.kneeDB:
		delta := over + n.kneeDB/2
		return (1/n.ratio - 1) * delta * delta / (2 * n.kneeDB)
	default:
		return (1/n.ratio - 1) * over
	}
}

func amplitudeToDB(amplitude float64) float64 {
	if amplitude < 1e-6 {
		amplitude = 1e-6
	}
	return 20 * math.Log10(amplitude)
}
