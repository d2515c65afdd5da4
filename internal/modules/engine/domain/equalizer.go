package domain

// NumBands is the number of equalizer bands in the signal chain.
const NumBands = 10

// Gain limits for every equalizer band, in dB.
const (
	MinGainDB = -12.0
	MaxGainDB = 12.0
)

// BandFrequencies holds the fixed center frequency of each band in Hz.
var BandFrequencies = [NumBands]float64{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// BandType describes the filter shape used for a band.
type BandType int

const (
	BandLowShelf BandType = iota
	BandPeaking
	BandHighShelf
)

// BandTypeOf returns the filter shape for a band index: the lowest band is a
// low shelf, the highest a high shelf, everything in between a peaking filter.
func BandTypeOf(index int) BandType {
	switch index {
	case 0:
		return BandLowShelf
	case NumBands - 1:
		return BandHighShelf
	default:
		return BandPeaking
	}
}

// ValidBand returns true if index addresses an existing band.
func ValidBand(index int) bool {
	return 0 <= index && index < NumBands
}

// ClampGain clamps a band gain to [MinGainDB, MaxGainDB].
func ClampGain(gainDB float64) float64 {
	if gainDB < MinGainDB {
		return MinGainDB
	}
	if gainDB > MaxGainDB {
		return MaxGainDB
	}
	return gainDB
}

// Preset is a full set of band gains in band order.
type Preset [NumBands]float64

var presets = map[string]Preset{
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

// PresetByName returns the gain table for a named preset.
func PresetByName(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the names of all built-in presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
