package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

func TestMemoryLibrary(t *testing.T) {
	lib := NewMemoryLibrary()
	now := time.Now().UTC()
	older := now.Add(-time.Hour)

	lib.Add(domain.Track{ID: "a", Title: "A", PlayCount: 2, LastPlayed: &older})
	lib.Add(domain.Track{ID: "b", Title: "B", PlayCount: 9, LastPlayed: &now})
	lib.Add(domain.Track{ID: "c", Title: "C"})

	all, err := lib.GetAllTracks(context.Background())
	if err != nil || len(all) != 3 {
		t.Fatalf("GetAllTracks: %v, %d tracks", err, len(all))
	}
	if all[0].ID != "a" || all[2].ID != "c" {
		t.Error("insertion order not preserved")
	}

	recent, err := lib.GetRecentTracks(context.Background(), 5)
	if err != nil || len(recent) != 2 {
		t.Fatalf("GetRecentTracks: %v, %d tracks", err, len(recent))
	}
	if recent[0].ID != "b" {
		t.Errorf("expected most recent first, got %q", recent[0].ID)
	}

	top, err := lib.GetTopTracks(context.Background(), 1)
	if err != nil || len(top) != 1 || top[0].ID != "b" {
		t.Fatalf("GetTopTracks: %v, %v", err, top)
	}

	track, err := lib.GetTrackByID(context.Background(), "c")
	if err != nil || track == nil || track.Title != "C" {
		t.Fatalf("GetTrackByID: %v, %v", err, track)
	}
	missing, err := lib.GetTrackByID(context.Background(), "zzz")
	if err != nil || missing != nil {
		t.Errorf("missing track should be nil, got %v", missing)
	}
}

func TestMemoryLibrary_AddReplacesExisting(t *testing.T) {
	lib := NewMemoryLibrary()
	lib.Add(domain.Track{ID: "a", Title: "Old"})
	lib.Add(domain.Track{ID: "a", Title: "New"})

	all, _ := lib.GetAllTracks(context.Background())
	if len(all) != 1 || all[0].Title != "New" {
		t.Errorf("expected single replaced track, got %v", all)
	}
}
