package usecases

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mlvaren/tonic/internal/modules/mixer/application/ports"
	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

const (
	// MaxMixTracks caps an unbudgeted mix.
	MaxMixTracks = 50

	// Seed fallback sizes: recent and top plays, then a random grab.
	recentSeedCount = 5
	topSeedCount    = 5
	randomSeedCount = 3

	// featureWorkers bounds the goroutines warming the vector cache.
	featureWorkers = 4
)

// MixService generates smart mixes and optionally persists them as
// playlists. Each call is independent; the only state shared across calls is
// the feature cache behind the provider.
type MixService struct {
	library   ports.TrackLibrary
	features  ports.FeatureProvider
	playlists ports.PlaylistStore

	// randIntn is swappable for deterministic tests.
	randIntn func(n int) int
}

// NewMixService creates a MixService. The playlist store may be nil when
// saving is not wired up.
func NewMixService(
	library ports.TrackLibrary,
	features ports.FeatureProvider,
	playlists ports.PlaylistStore,
) *MixService {
	return &MixService{
		library:   library,
		features:  features,
		playlists: playlists,
		randIntn:  rand.Intn,
	}
}

// GenerateSmartMix runs the full selection pipeline: resolve seeds, warm the
// feature cache, filter, score, diversify, budget. An empty outcome is not
// an error; the result carries a reason instead.
func (s *MixService) GenerateSmartMix(ctx context.Context, req domain.MixRequest) (domain.MixResult, error) {
	result := domain.MixResult{
		Description: req.Describe(),
		ColorTag:    req.Mood.ColorTag(),
	}

	tracks, err := s.library.GetAllTracks(ctx)
	if err != nil {
		return domain.MixResult{}, fmt.Errorf("failed to fetch library: %w", err)
	}
	if len(tracks) == 0 {
		result.Reason = "the library has no tracks"
		return result, nil
	}

	seeds, err := s.resolveSeeds(ctx, req, tracks)
	if err != nil {
		return domain.MixResult{}, err
	}

	s.warmFeatures(tracks)
	s.warmFeatures(seeds)

	if err := ctx.Err(); err != nil {
		return domain.MixResult{}, err
	}

	candidates := domain.FilterByGenre(tracks, req.Genre)
	candidates = domain.FilterByMood(candidates, req.Mood, s.features.Lookup)
	if req.ExcludeSkipped {
		candidates = filterPlayed(candidates)
	}

	if err := ctx.Err(); err != nil {
		return domain.MixResult{}, err
	}

	candidates = s.rankByScore(candidates, seeds, req)

	if err := ctx.Err(); err != nil {
		return domain.MixResult{}, err
	}

	candidates = domain.ApplyDiversity(candidates, req.Diversity)

	if req.TargetDurationMinutes > 0 {
		candidates = domain.LimitByDuration(candidates, req.TargetDurationMinutes)
	} else if len(candidates) > MaxMixTracks {
		candidates = candidates[:MaxMixTracks]
	}

	if len(candidates) == 0 {
		result.Reason = "no tracks matched the requested filters"
		return result, nil
	}

	result.Tracks = candidates
	return result, nil
}

// SaveMix persists a generated mix as a named playlist.
func (s *MixService) SaveMix(ctx context.Context, name string, mix domain.MixResult) (domain.Playlist, error) {
	if name == "" {
		return domain.Playlist{}, ErrEmptyPlaylistName
	}
	if len(mix.Tracks) == 0 {
		return domain.Playlist{}, ErrEmptyMix
	}

	ids := make([]domain.TrackID, len(mix.Tracks))
	for i, track := range mix.Tracks {
		ids[i] = track.ID
	}

	playlist := domain.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: mix.Description,
		ColorTag:    mix.ColorTag,
		TrackIDs:    ids,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.playlists.SavePlaylist(ctx, playlist); err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to save playlist: %w", err)
	}
	return playlist, nil
}

// resolveSeeds picks reference tracks: explicit request seeds, then recent
// plays, then top plays, then a random grab. The first non-empty source wins.
func (s *MixService) resolveSeeds(
	ctx context.Context,
	req domain.MixRequest,
	tracks []domain.Track,
) ([]domain.Track, error) {
	if len(req.SeedTrackIDs) > 0 {
		var seeds []domain.Track
		for _, id := range req.SeedTrackIDs {
			track, err := s.library.GetTrackByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve seed %s: %w", id, err)
			}
			if track != nil {
				seeds = append(seeds, *track)
			}
		}
		if len(seeds) > 0 {
			return seeds, nil
		}
	}

	recent, err := s.library.GetRecentTracks(ctx, recentSeedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent tracks: %w", err)
	}
	if len(recent) > 0 {
		return recent, nil
	}

	top, err := s.library.GetTopTracks(ctx, topSeedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top tracks: %w", err)
	}
	if len(top) > 0 {
		return top, nil
	}

	return s.randomSeeds(tracks), nil
}

func (s *MixService) randomSeeds(tracks []domain.Track) []domain.Track {
	count := randomSeedCount
	if count > len(tracks) {
		count = len(tracks)
	}

	picked := make([]domain.Track, 0, count)
	used := make(map[int]bool)
	for len(picked) < count {
		i := s.randIntn(len(tracks))
		if used[i] {
			continue
		}
		used[i] = true
		picked = append(picked, tracks[i])
	}
	return picked
}

// warmFeatures computes missing feature vectors with a small worker pool.
// The provider's cache keeps the first computed vector per track.
func (s *MixService) warmFeatures(tracks []domain.Track) {
	jobs := make(chan domain.Track)
	var wg sync.WaitGroup

	for i := 0; i < featureWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for track := range jobs {
				s.features.VectorFor(track)
			}
		}()
	}

	for _, track := range tracks {
		jobs <- track
	}
	close(jobs)
	wg.Wait()
}

// rankByScore sorts candidates by their seed score, descending. The sort is
// stable so equal scores keep library order.
func (s *MixService) rankByScore(
	candidates []domain.Track,
	seeds []domain.Track,
	req domain.MixRequest,
) []domain.Track {
	opts := domain.ScoreOptions{IncludeRecentlyPlayed: req.IncludeRecentlyPlayed}

	scores := make([]float64, len(candidates))
	for i, track := range candidates {
		scores[i] = domain.Score(track, seeds, s.features.Lookup, opts)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranked := make([]domain.Track, len(candidates))
	for i, idx := range order {
		ranked[i] = candidates[idx]
	}
	return ranked
}

func filterPlayed(tracks []domain.Track) []domain.Track {
	var out []domain.Track
	for _, t := range tracks {
		if t.PlayCount > 0 {
			out = append(out, t)
		}
	}
	return out
}
