package domain

import "testing"

func TestClampGain(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below minimum", -40, MinGainDB},
		{"at minimum", -12, -12},
		{"inside range", 3.5, 3.5},
		{"at maximum", 12, 12},
		{"above maximum", 99, MaxGainDB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampGain(tt.in); got != tt.want {
				t.Errorf("ClampGain(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPresetByName_Rock(t *testing.T) {
	want := Preset{5, 4, 3, 1, -1, -1, 0, 2, 4, 5}

	got, ok := PresetByName("rock")
	if !ok {
		t.Fatal("rock preset not found")
	}
	if got != want {
		t.Errorf("rock preset = %v, want %v", got, want)
	}
}

func TestPresetByName_AllPresetsRoundTrip(t *testing.T) {
	want := map[string]Preset{
		"flat":        {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		"rock":        {5, 4, 3, 1, -1, -1, 0, 2, 4, 5},
		"pop":         {-1, 2, 4, 4, 2, 0, -1, -1, 2, 3},
		"jazz":        {3, 2, 1, 2, -1, -1, 0, 2, 3, 4},
		"classical":   {4, 3, 2, 1, -1, -1, 0, 2, 3, 4},
		"electronic":  {4, 3, 1, 0, -1, 2, 1, 1, 3, 4},
		"hiphop":      {5, 4, 1, 3, -1, -1, 1, 2, 3, 4},
		"vocal":       {-2, -1, 0, 1, 3, 4, 3, 1, 0, -1},
		"bassBoost":   {6, 4, 2, 0, 0, 0, 0, 0, 0, 0},
		"trebleBoost": {0, 0, 0, 0, 0, 0, 0, 2, 4, 6},
	}

	if len(PresetNames()) != len(want) {
		t.Errorf("expected %d presets, got %d", len(want), len(PresetNames()))
	}
	for name, gains := range want {
		got, ok := PresetByName(name)
		if !ok {
			t.Errorf("preset %q not found", name)
			continue
		}
		if got != gains {
			t.Errorf("preset %q = %v, want %v", name, got, gains)
		}
	}
}

func TestPresetByName_TrebleBoostMirrorsBassBoost(t *testing.T) {
	bass, _ := PresetByName("bassBoost")
	treble, _ := PresetByName("trebleBoost")

	for i := 0; i < NumBands; i++ {
		if bass[i] != treble[NumBands-1-i] {
			t.Errorf("band %d: trebleBoost is not a mirror of bassBoost", i)
		}
	}
}

func TestPresetByName_Unknown(t *testing.T) {
	if _, ok := PresetByName("loudness-war"); ok {
		t.Error("expected unknown preset to be reported missing")
	}
}

func TestBandTypeOf(t *testing.T) {
	if BandTypeOf(0) != BandLowShelf {
		t.Error("band 0 should be a low shelf")
	}
	if BandTypeOf(NumBands-1) != BandHighShelf {
		t.Error("last band should be a high shelf")
	}
	for i := 1; i < NumBands-1; i++ {
		if BandTypeOf(i) != BandPeaking {
			t.Errorf("band %d should be peaking", i)
		}
	}
}

func TestValidBand(t *testing.T) {
	if ValidBand(-1) || ValidBand(NumBands) {
		t.Error("out-of-range band indexes reported valid")
	}
	if !ValidBand(0) || !ValidBand(NumBands-1) {
		t.Error("in-range band indexes reported invalid")
	}
}
