package domain

import (
	"strconv"
	"time"
)

// TrackID is a unique identifier for a track in the library.
type TrackID string

// Track represents a library track. The library collaborator owns this data;
// the mixer reads it and never writes it back.
type Track struct {
	ID         TrackID
	Title      string
	Artist     string
	Album      string
	Genre      string // optional
	Duration   float64 // seconds
	PlayCount  int
	LastPlayed *time.Time // nil when never played
	DateAdded  time.Time
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.ID != "" && t.Title != ""
}

// FormattedDuration returns the duration as a human-readable string (mm:ss or hh:mm:ss).
func (t *Track) FormattedDuration() string {
	totalSeconds := int(t.Duration)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
