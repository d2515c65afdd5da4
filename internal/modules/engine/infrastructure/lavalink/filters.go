package lavalink

import (
	"github.com/disgoorg/disgolink/v3/lavalink"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// bandIndex maps each of our ten bands onto the closest of Lavalink's
// fifteen fixed equalizer bands (25 Hz .. 16 kHz).
var bandIndex = [domain.NumBands]int{0, 2, 3, 5, 6, 8, 9, 11, 12, 14}

// Lavalink equalizer gains are linear multipliers in [-0.25, 1.0], not
// decibels. Map our +-12 dB range linearly onto +-0.25 and clamp.
const gainFactor = 0.25 / domain.MaxGainDB

func gainsToEqualizer(gains [domain.NumBands]float64) lavalink.Equalizer {
	var eq lavalink.Equalizer
	for band, db := range gains {
		g := db * gainFactor
		if g < -0.25 {
			g = -0.25
		}
		if g > 1.0 {
			g = 1.0
		}
		eq[bandIndex[band]] = float32(g)
	}
	return eq
}

func spatialToRotation(settings domain.SpatialSettings) *lavalink.Rotation {
	if !settings.Enabled {
		return nil
	}
	return &lavalink.Rotation{RotationHz: rotationHz}
}

// rotationHz is the server-side orbit speed. The filter takes whole hertz
// only, so this is the slowest rotation the server can do; the native
// panner orbits slower.
const rotationHz = 1
