package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/mlvaren/tonic/internal/modules/mixer/application/ports"
	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

// MemoryLibrary is an in-memory implementation of TrackLibrary, used by
// tests and as a fixture-backed library for development.
type MemoryLibrary struct {
	mu     sync.RWMutex
	tracks map[domain.TrackID]domain.Track
	order  []domain.TrackID
}

// Ensure MemoryLibrary implements TrackLibrary and TrackWriter.
var (
	_ ports.TrackLibrary = (*MemoryLibrary)(nil)
	_ ports.TrackWriter  = (*MemoryLibrary)(nil)
)

// NewMemoryLibrary creates a new MemoryLibrary.
func NewMemoryLibrary() *MemoryLibrary {
	return &MemoryLibrary{
		tracks: make(map[domain.TrackID]domain.Track),
	}
}

// Add stores a track, keeping insertion order for GetAllTracks.
func (l *MemoryLibrary) Add(track domain.Track) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.tracks[track.ID]; !exists {
		l.order = append(l.order, track.ID)
	}
	l.tracks[track.ID] = track
}

// SaveTrack stores a track through the writer port.
func (l *MemoryLibrary) SaveTrack(_ context.Context, track domain.Track) error {
	l.Add(track)
	return nil
}

// GetAllTracks returns every track in insertion order.
func (l *MemoryLibrary) GetAllTracks(context.Context) ([]domain.Track, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Track, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.tracks[id])
	}
	return out, nil
}

// GetRecentTracks returns up to n played tracks, newest play first.
func (l *MemoryLibrary) GetRecentTracks(_ context.Context, n int) ([]domain.Track, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var played []domain.Track
	for _, id := range l.order {
		track := l.tracks[id]
		if track.LastPlayed != nil {
			played = append(played, track)
		}
	}
	sort.SliceStable(played, func(a, b int) bool {
		return played[a].LastPlayed.After(*played[b].LastPlayed)
	})
	return truncate(played, n), nil
}

// GetTopTracks returns up to n played tracks, highest play count first.
func (l *MemoryLibrary) GetTopTracks(_ context.Context, n int) ([]domain.Track, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var played []domain.Track
	for _, id := range l.order {
		track := l.tracks[id]
		if track.PlayCount > 0 {
			played = append(played, track)
		}
	}
	sort.SliceStable(played, func(a, b int) bool {
		return played[a].PlayCount > played[b].PlayCount
	})
	return truncate(played, n), nil
}

// GetTrackByID returns the track with the given id, or nil if absent.
func (l *MemoryLibrary) GetTrackByID(_ context.Context, id domain.TrackID) (*domain.Track, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	track, ok := l.tracks[id]
	if !ok {
		return nil, nil
	}
	return &track, nil
}

func truncate(tracks []domain.Track, n int) []domain.Track {
	if len(tracks) > n {
		return tracks[:n]
	}
	return tracks
}
