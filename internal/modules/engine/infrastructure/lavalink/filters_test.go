package lavalink

import (
	"testing"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

func TestGainsToEqualizer_MapsAndScales(t *testing.T) {
	var gains [domain.NumBands]float64
	gains[0] = 12  // full boost on 32 Hz
	gains[9] = -12 // full cut on 16 kHz
	gains[4] = 6

	eq := gainsToEqualizer(gains)

	if eq[0] != 0.25 {
		t.Errorf("band 0 gain = %v, want 0.25", eq[0])
	}
	if eq[14] != -0.25 {
		t.Errorf("band 14 gain = %v, want -0.25", eq[14])
	}
	if eq[6] != 0.125 {
		t.Errorf("band 6 gain = %v, want 0.125", eq[6])
	}

	// Unmapped server bands stay flat.
	for _, i := range []int{1, 4, 7, 10, 13} {
		if eq[i] != 0 {
			t.Errorf("unmapped band %d gain = %v, want 0", i, eq[i])
		}
	}
}

func TestGainsToEqualizer_ClampsOutOfRange(t *testing.T) {
	var gains [domain.NumBands]float64
	gains[0] = 100
	gains[1] = -100

	eq := gainsToEqualizer(gains)

	if eq[0] > 1.0 {
		t.Errorf("band 0 gain %v exceeds 1.0", eq[0])
	}
	if eq[2] < -0.25 {
		t.Errorf("band 2 gain %v below -0.25", eq[2])
	}
}

func TestSpatialToRotation(t *testing.T) {
	if got := spatialToRotation(domain.SpatialSettings{Enabled: false}); got != nil {
		t.Error("disabled spatial produced a rotation filter")
	}

	rot := spatialToRotation(domain.SpatialSettings{Enabled: true, RolloffFactor: 1})
	if rot == nil || rot.RotationHz != rotationHz {
		t.Errorf("unexpected rotation filter: %+v", rot)
	}
	// A zero rate would make the filter a silent no-op.
	if rot.RotationHz == 0 {
		t.Error("enabled spatial produced a zero rotation rate")
	}
}
