package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mlvaren/tonic/internal/modules/mixer/application/ports"
	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
)

// TrackRecord is the persisted track row.
type TrackRecord struct {
	ID         string `gorm:"primaryKey"`
	Title      string
	Artist     string
	Album      string
	Genre      string
	Duration   float64
	PlayCount  int
	LastPlayed *time.Time
	DateAdded  time.Time
}

func (TrackRecord) TableName() string { return "tracks" }

// PlaylistRecord is the persisted playlist row.
type PlaylistRecord struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description string
	ColorTag    string
	CreatedAt   time.Time
}

func (PlaylistRecord) TableName() string { return "playlists" }

// PlaylistTrackRecord orders tracks within a playlist.
type PlaylistTrackRecord struct {
	PlaylistID string `gorm:"primaryKey"`
	Position   int    `gorm:"primaryKey"`
	TrackID    string
}

func (PlaylistTrackRecord) TableName() string { return "playlist_tracks" }

// GormStore backs the track library and playlist store with a SQL database.
type GormStore struct {
	db *gorm.DB
}

// Ensure GormStore implements the persistence ports.
var (
	_ ports.TrackLibrary  = (*GormStore)(nil)
	_ ports.TrackWriter   = (*GormStore)(nil)
	_ ports.PlaylistStore = (*GormStore)(nil)
)

// NewGormStore migrates the schema and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	err := db.AutoMigrate(&TrackRecord{}, &PlaylistRecord{}, &PlaylistTrackRecord{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate mixer schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveTrack inserts or updates a track.
func (s *GormStore) SaveTrack(ctx context.Context, track domain.Track) error {
	record := toRecord(track)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save track %s: %w", track.ID, err)
	}
	return nil
}

// GetAllTracks returns every track, oldest additions first.
func (s *GormStore) GetAllTracks(ctx context.Context) ([]domain.Track, error) {
	var records []TrackRecord
	err := s.db.WithContext(ctx).Order("date_added").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return toTracks(records), nil
}

// GetRecentTracks returns up to n played tracks, newest play first.
func (s *GormStore) GetRecentTracks(ctx context.Context, n int) ([]domain.Track, error) {
	var records []TrackRecord
	err := s.db.WithContext(ctx).
		Where("last_played IS NOT NULL").
		Order("last_played DESC").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tracks: %w", err)
	}
	return toTracks(records), nil
}

// GetTopTracks returns up to n played tracks, highest play count first.
func (s *GormStore) GetTopTracks(ctx context.Context, n int) ([]domain.Track, error) {
	var records []TrackRecord
	err := s.db.WithContext(ctx).
		Where("play_count > 0").
		Order("play_count DESC").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list top tracks: %w", err)
	}
	return toTracks(records), nil
}

// GetTrackByID returns the track with the given id, or nil if absent.
func (s *GormStore) GetTrackByID(ctx context.Context, id domain.TrackID) (*domain.Track, error) {
	var record TrackRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", string(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load track %s: %w", id, err)
	}
	track := toTrack(record)
	return &track, nil
}

// SavePlaylist stores the playlist and its ordered track list atomically.
func (s *GormStore) SavePlaylist(ctx context.Context, playlist domain.Playlist) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := PlaylistRecord{
			ID:          playlist.ID,
			Name:        playlist.Name,
			Description: playlist.Description,
			ColorTag:    playlist.ColorTag,
			CreatedAt:   playlist.CreatedAt,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		entries := make([]PlaylistTrackRecord, len(playlist.TrackIDs))
		for i, trackID := range playlist.TrackIDs {
			entries[i] = PlaylistTrackRecord{
				PlaylistID: playlist.ID,
				Position:   i,
				TrackID:    string(trackID),
			}
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save playlist %s: %w", playlist.ID, err)
	}
	return nil
}

// GetPlaylist loads a saved playlist, or nil if absent.
func (s *GormStore) GetPlaylist(ctx context.Context, id string) (*domain.Playlist, error) {
	var record PlaylistRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist %s: %w", id, err)
	}

	var entries []PlaylistTrackRecord
	err = s.db.WithContext(ctx).
		Where("playlist_id = ?", id).
		Order("position").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist tracks: %w", err)
	}

	playlist := domain.Playlist{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		ColorTag:    record.ColorTag,
		CreatedAt:   record.CreatedAt,
	}
	for _, entry := range entries {
		playlist.TrackIDs = append(playlist.TrackIDs, domain.TrackID(entry.TrackID))
	}
	return &playlist, nil
}

func toRecord(t domain.Track) TrackRecord {
	return TrackRecord{
		ID:         string(t.ID),
		Title:      t.Title,
		Artist:     t.Artist,
		Album:      t.Album,
		Genre:      t.Genre,
		Duration:   t.Duration,
		PlayCount:  t.PlayCount,
		LastPlayed: t.LastPlayed,
		DateAdded:  t.DateAdded,
	}
}

func toTrack(r TrackRecord) domain.Track {
	return domain.Track{
		ID:         domain.TrackID(r.ID),
		Title:      r.Title,
		Artist:     r.Artist,
		Album:      r.Album,
		Genre:      r.Genre,
		Duration:   r.Duration,
		PlayCount:  r.PlayCount,
		LastPlayed: r.LastPlayed,
		DateAdded:  r.DateAdded,
	}
}

func toTracks(records []TrackRecord) []domain.Track {
	out := make([]domain.Track, len(records))
	for i, r := range records {
		out[i] = toTrack(r)
	}
	return out
}
