package domain

import "strings"

// Mood identifies a target listening mood for a generated mix.
type Mood string

const (
	MoodEnergetic Mood = "energetic"
	MoodChill     Mood = "chill"
	MoodFocus     Mood = "focus"
	MoodWorkout   Mood = "workout"
	MoodSleep     Mood = "sleep"
)

// ParseMood parses a mood name case-insensitively. The bool reports whether
// the name was recognized.
func ParseMood(s string) (Mood, bool) {
	switch Mood(strings.ToLower(strings.TrimSpace(s))) {
	case MoodEnergetic:
		return MoodEnergetic, true
	case MoodChill:
		return MoodChill, true
	case MoodFocus:
		return MoodFocus, true
	case MoodWorkout:
		return MoodWorkout, true
	case MoodSleep:
		return MoodSleep, true
	default:
		return "", false
	}
}

// Matches reports whether a feature vector satisfies the mood's predicate.
// Unknown moods match everything.
func (m Mood) Matches(v FeatureVector) bool {
	switch m {
	case MoodEnergetic:
		return v.Energy > 0.6 && v.Valence > 0.5
	case MoodChill:
		return v.Energy < 0.5 && v.Valence > 0.4
	case MoodFocus:
		return v.Acousticness > 0.5 && v.Energy < 0.6
	case MoodWorkout:
		return v.Energy > 0.7 && v.Danceability > 0.6
	case MoodSleep:
		return v.Energy < 0.3 && v.Acousticness > 0.6
	default:
		return true
	}
}

// ColorTag returns the cosmetic hex color associated with the mood.
func (m Mood) ColorTag() string {
	switch m {
	case MoodEnergetic:
		return "#ff5722"
	case MoodChill:
		return "#4fc3f7"
	case MoodFocus:
		return "#9575cd"
	case MoodWorkout:
		return "#ef5350"
	case MoodSleep:
		return "#5c6bc0"
	default:
		return "#9e9e9e"
	}
}
