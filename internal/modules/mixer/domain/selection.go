package domain

import "strings"

// DiversityGraceCount is the number of selections the diversity filter
// force-includes before enforcing its threshold. Without this grace window a
// small library with one dominant artist would diversify down to nothing.
const DiversityGraceCount = 20

// FilterByGenre keeps tracks whose genre contains the query, case-insensitively.
func FilterByGenre(tracks []Track, genre string) []Track {
	if genre == "" {
		return tracks
	}

	query := strings.ToLower(genre)
	var out []Track
	for _, t := range tracks {
		if strings.Contains(strings.ToLower(t.Genre), query) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByMood keeps tracks whose feature vector satisfies the mood
// predicate. Tracks without a vector pass through, fail-open.
func FilterByMood(tracks []Track, mood Mood, vectorOf func(TrackID) (FeatureVector, bool)) []Track {
	if mood == "" {
		return tracks
	}

	var out []Track
	for _, t := range tracks {
		vector, ok := vectorOf(t.ID)
		if !ok || mood.Matches(vector) {
			out = append(out, t)
		}
	}
	return out
}

// ScoreOptions carries the request flags that influence scoring.
type ScoreOptions struct {
	IncludeRecentlyPlayed bool
}

// Score rates a track against the seed set in [0,1]: the mean over seeds of
// the feature similarity, plus a play-count bonus when recently played
// tracks are welcome and a flat bonus when the genre matches any seed.
func Score(track Track, seeds []Track, vectorOf func(TrackID) (FeatureVector, bool), opts ScoreOptions) float64 {
	if len(seeds) == 0 {
		return 0
	}

	vector, ok := vectorOf(track.ID)
	if !ok {
		return 0
	}

	var sum float64
	for _, seed := range seeds {
		seedVector, ok := vectorOf(seed.ID)
		if !ok {
			continue
		}
		sum += vector.Similarity(seedVector)
	}
	score := sum / float64(len(seeds))

	if opts.IncludeRecentlyPlayed {
		score += float64(track.PlayCount) / 100 * 0.1
	}
	if track.Genre != "" && genreMatchesAnySeed(track.Genre, seeds) {
		score += 0.2
	}

	return clampUnit(score)
}

func genreMatchesAnySeed(genre string, seeds []Track) bool {
	for _, seed := range seeds {
		if strings.EqualFold(genre, seed.Genre) {
			return true
		}
	}
	return false
}

// ApplyDiversity greedily walks tracks in score order and skips any track
// that would push its artist's or genre's share of the selection above the
// level's threshold. The first DiversityGraceCount selections are always
// accepted.
func ApplyDiversity(ordered []Track, level DiversityLevel) []Track {
	threshold, constrained := level.Threshold()
	if !constrained {
		return ordered
	}

	artistCounts := make(map[string]int)
	genreCounts := make(map[string]int)
	var selected []Track

	for _, t := range ordered {
		if len(selected) >= DiversityGraceCount {
			total := float64(len(selected))
			if float64(artistCounts[t.Artist])/total >= threshold ||
				float64(genreCounts[t.Genre])/total >= threshold {
				continue
			}
		}
		selected = append(selected, t)
		artistCounts[t.Artist]++
		genreCounts[t.Genre]++
	}

	return selected
}

// LimitByDuration returns the longest prefix whose total duration stays
// within the target. Tracks past the first overflow are not reconsidered.
func LimitByDuration(tracks []Track, targetMinutes float64) []Track {
	budget := targetMinutes * 60
	var total float64
	var out []Track

	for _, t := range tracks {
		if total+t.Duration > budget {
			break
		}
		out = append(out, t)
		total += t.Duration
	}
	return out
}
