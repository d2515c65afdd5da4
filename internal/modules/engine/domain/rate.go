package domain

import "math"

// Playback rate limits.
const (
	MinSpeed = 0.5
	MaxSpeed = 2.0

	MinPitchSemitones = -12.0
	MaxPitchSemitones = 12.0
)

// ClampSpeed clamps a playback speed to [MinSpeed, MaxSpeed].
func ClampSpeed(speed float64) float64 {
	return clamp(speed, MinSpeed, MaxSpeed)
}

// ClampPitch clamps a pitch shift to [MinPitchSemitones, MaxPitchSemitones].
func ClampPitch(semitones float64) float64 {
	return clamp(semitones, MinPitchSemitones, MaxPitchSemitones)
}

// EffectiveRate computes the resample rate applied to the source.
//
// Speed and pitch share a single resampling parameter: with the pitch lock
// engaged the rate is the speed alone, otherwise the pitch shift folds into
// the rate as 2^(semitones/12). This is rate-based pitch adjustment, not
// phase-vocoder pitch shifting.
func EffectiveRate(speed, semitones float64, pitchLocked bool) float64 {
	if pitchLocked {
		return speed
	}
	return speed * math.Pow(2, semitones/12)
}
