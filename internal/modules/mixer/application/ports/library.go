package ports

import (
	"context"

	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

// TrackLibrary is the read side of the track store. The mixer never writes
// track data.
type TrackLibrary interface {
	// GetAllTracks returns every track in the library.
	GetAllTracks(ctx context.Context) ([]domain.Track, error)

	// GetRecentTracks returns up to n tracks ordered by last play, newest first.
	GetRecentTracks(ctx context.Context, n int) ([]domain.Track, error)

	// GetTopTracks returns up to n tracks ordered by play count, highest first.
	GetTopTracks(ctx context.Context, n int) ([]domain.Track, error)

	// GetTrackByID returns the track with the given id, or nil if absent.
	GetTrackByID(ctx context.Context, id domain.TrackID) (*domain.Track, error)
}

// TrackWriter is the ingest side of the track store, used by the library
// management surface only.
type TrackWriter interface {
	// SaveTrack inserts the track, replacing any existing entry with its id.
	SaveTrack(ctx context.Context, track domain.Track) error
}

// PlaylistStore persists generated mixes as named playlists.
type PlaylistStore interface {
	SavePlaylist(ctx context.Context, playlist domain.Playlist) error
}
