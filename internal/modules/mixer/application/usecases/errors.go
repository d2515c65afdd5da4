package usecases

import "errors"

var (
	// ErrEmptyPlaylistName is returned when saving a mix without a name.
	ErrEmptyPlaylistName = errors.New("playlist name must not be empty")

	// ErrEmptyMix is returned when saving a mix with no tracks.
	ErrEmptyMix = errors.New("mix has no tracks to save")
)
