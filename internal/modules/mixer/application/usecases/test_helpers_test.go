package usecases

import (
	"context"
	"sync"

	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

// fakeLibrary is an in-memory TrackLibrary test double.
type fakeLibrary struct {
	tracks []domain.Track
	recent []domain.Track
	top    []domain.Track

	allErr error
}

func (f *fakeLibrary) GetAllTracks(context.Context) ([]domain.Track, error) {
	return f.tracks, f.allErr
}

func (f *fakeLibrary) GetRecentTracks(_ context.Context, n int) ([]domain.Track, error) {
	return capped(f.recent, n), nil
}

func (f *fakeLibrary) GetTopTracks(_ context.Context, n int) ([]domain.Track, error) {
	return capped(f.top, n), nil
}

func (f *fakeLibrary) GetTrackByID(_ context.Context, id domain.TrackID) (*domain.Track, error) {
	for _, t := range f.tracks {
		if t.ID == id {
			track := t
			return &track, nil
		}
	}
	return nil, nil
}

func capped(tracks []domain.Track, n int) []domain.Track {
	if len(tracks) > n {
		return tracks[:n]
	}
	return tracks
}

// fakeFeatures serves fixed vectors and records which tracks were computed.
type fakeFeatures struct {
	mu       sync.Mutex
	vectors  map[domain.TrackID]domain.FeatureVector
	computed map[domain.TrackID]int
}

func newFakeFeatures(vectors map[domain.TrackID]domain.FeatureVector) *fakeFeatures {
	if vectors == nil {
		vectors = make(map[domain.TrackID]domain.FeatureVector)
	}
	return &fakeFeatures{vectors: vectors, computed: make(map[domain.TrackID]int)}
}

func (f *fakeFeatures) VectorFor(track domain.Track) domain.FeatureVector {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.computed[track.ID]++
	if v, ok := f.vectors[track.ID]; ok {
		return v
	}
	v := domain.FeatureVector{Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5, Tempo: 120}
	f.vectors[track.ID] = v
	return v
}

func (f *fakeFeatures) Lookup(id domain.TrackID) (domain.FeatureVector, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vectors[id]
	return v, ok
}

// fakePlaylists records saved playlists.
type fakePlaylists struct {
	mu      sync.Mutex
	saved   []domain.Playlist
	saveErr error
}

func (f *fakePlaylists) SavePlaylist(_ context.Context, playlist domain.Playlist) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	f.saved = append(f.saved, playlist)
	f.mu.Unlock()
	return nil
}
