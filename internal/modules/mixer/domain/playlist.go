package domain

import "time"

// Playlist is a saved mix: the ordered track ids plus the mix's cosmetic
// metadata.
type Playlist struct {
	ID          string
	Name        string
	Description string
	ColorTag    string
	TrackIDs    []TrackID
	CreatedAt   time.Time
}
