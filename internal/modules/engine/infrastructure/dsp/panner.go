package dsp

import (
	"math"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// pannerNode is the spatial stage: a slow equal-power rotation of the stereo
// image with distance attenuation derived from the rolloff factor. Disabled,
// it passes audio through untouched.
type pannerNode struct {
	enabled     bool
	attenuation float64
	phase       float64
	phaseInc    float64
}

// rotationHz is the fixed speed of the spatial rotation.
const rotationHz = 0.2

func newPannerNode(sampleRate float64, settings domain.SpatialSettings) *pannerNode {
	n := &pannerNode{phaseInc: 2 * math.Pi * rotationHz / sampleRate}
	n.setParams(settings)
	return n
}

func (n *pannerNode) setParams(settings domain.SpatialSettings) {
	n.enabled = settings.Enabled
	// Inverse-distance gain for a listener at unit distance.
	n.attenuation = 1 / (1 + settings.RolloffFactor)
}

func (n *pannerNode) process(buf []float64) {
	if !n.enabled {
		return
	}
	for i := 0; i+1 < len(buf); i += 2 {
		pan := math.Sin(n.phase) // [-1, 1], left to right
		theta := (pan + 1) * math.Pi / 4
		// sqrt2 restores unity at center after the equal-power split.
		gl := math.Cos(theta) * math.Sqrt2 * n.attenuation
		gr := math.Sin(theta) * math.Sqrt2 * n.attenuation
		buf[i] *= gl
		buf[i+1] *= gr

		n.phase += n.phaseInc
		if n.phase > 2*math.Pi {
			n.phase -= 2 * math.Pi
		}
	}
}
