package domain

import (
	"strconv"
	"strings"
	"time"
)

// DiversityLevel bounds how much any single artist or genre may dominate a
// generated mix.
type DiversityLevel string

const (
	DiversityLow    DiversityLevel = "low"
	DiversityMedium DiversityLevel = "medium"
	DiversityHigh   DiversityLevel = "high"
)

// Threshold returns the maximum artist/genre share the level tolerates.
// Low means unconstrained.
func (l DiversityLevel) Threshold() (float64, bool) {
	switch l {
	case DiversityMedium:
		return 0.5, true
	case DiversityHigh:
		return 0.3, true
	default:
		return 0, false
	}
}

// MixRequest describes a smart mix to generate. Zero values mean "not
// requested" for every field.
type MixRequest struct {
	SeedTrackIDs          []TrackID
	Mood                  Mood
	Genre                 string
	TargetDurationMinutes float64
	Diversity             DiversityLevel
	IncludeRecentlyPlayed bool
	ExcludeSkipped        bool
}

// MixResult is an ordered track selection plus cosmetic metadata.
type MixResult struct {
	Tracks      []Track
	Description string
	ColorTag    string

	// Reason explains an empty result in human terms.
	Reason string
}

// TotalDuration sums the selected tracks' durations.
func (r MixResult) TotalDuration() time.Duration {
	var seconds float64
	for _, t := range r.Tracks {
		seconds += t.Duration
	}
	return time.Duration(seconds * float64(time.Second))
}

// Describe builds the mix description from the request parameters.
func (req MixRequest) Describe() string {
	var parts []string
	if req.Mood != "" {
		parts = append(parts, string(req.Mood))
	}
	if req.Genre != "" {
		parts = append(parts, req.Genre)
	}
	if req.TargetDurationMinutes > 0 {
		parts = append(parts, strconv.Itoa(int(req.TargetDurationMinutes))+" min")
	}
	parts = append(parts, "smart mix")
	return strings.Join(parts, " ")
}
