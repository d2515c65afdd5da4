package lavalink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"

	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// updateTimeout bounds each REST call made by the update worker.
const updateTimeout = 5 * time.Second

// updateQueueSize is the update worker's buffer. Control changes beyond it
// are dropped rather than blocking the caller.
const updateQueueSize = 16

// Config holds the connection settings for a Lavalink node.
type Config struct {
	Address  string
	Password string
	Secure   bool

	// UserID identifies this client to the node. PlayerID keys the single
	// player a personal setup uses.
	UserID   snowflake.ID
	PlayerID snowflake.ID
}

// Backend builds chains whose processing runs on a remote Lavalink node.
// Equalizer, timescale and rotation map onto server-side filters; the
// compressor has no Lavalink counterpart and is ignored.
type Backend struct {
	link     disgolink.Client
	playerID snowflake.ID
}

var _ ports.Backend = (*Backend)(nil)

// NewBackend connects to the configured node, retrying transient failures.
func NewBackend(ctx context.Context, config Config) (*Backend, error) {
	link := disgolink.New(config.UserID)

	err := retry.Do(
		func() error {
			_, err := link.AddNode(ctx, disgolink.NodeConfig{
				Name:     "main",
				Address:  config.Address,
				Password: config.Password,
				Secure:   config.Secure,
			})
			return err
		},
		retry.Attempts(3),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "address", config.Address)

	return &Backend{link: link, playerID: config.PlayerID}, nil
}

// EncodedSource is a track already resolved to its Lavalink encoded form.
type EncodedSource struct {
	TrackID string
	Encoded string
}

func (s *EncodedSource) ID() string { return s.TrackID }

func (b *Backend) BuildChain(ctx context.Context, source ports.Source) (ports.Chain, error) {
	encoded, ok := source.(*EncodedSource)
	if !ok {
		return nil, fmt.Errorf("lavalink backend cannot play source type %T", source)
	}

	player := b.link.Player(b.playerID)
	if err := player.Update(ctx, lavalink.WithEncodedTrack(encoded.Encoded)); err != nil {
		return nil, fmt.Errorf("failed to start track: %w", err)
	}

	chain := &Chain{
		player:  player,
		updates: make(chan []lavalink.PlayerUpdateOpt, updateQueueSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go chain.run()
	return chain, nil
}

// Chain applies control changes to a remote player. REST calls happen on a
// dedicated worker so callers never block on the network.
type Chain struct {
	player  disgolink.Player
	updates chan []lavalink.PlayerUpdateOpt
	stop    chan struct{}
	done    chan struct{}

	closeOnce sync.Once

	mu      sync.Mutex
	filters lavalink.Filters
}

var _ ports.Chain = (*Chain)(nil)

func (c *Chain) run() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		case opts := <-c.updates:
			ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
			if err := c.player.Update(ctx, opts...); err != nil {
				slog.Warn("player update failed", "error", err)
			}
			cancel()
		}
	}
}

// enqueue hands opts to the worker, dropping them when the queue is full.
func (c *Chain) enqueue(opts ...lavalink.PlayerUpdateOpt) {
	select {
	case c.updates <- opts:
	default:
		slog.Warn("player update queue full, dropping update")
	}
}

func (c *Chain) ApplyEqualizer(gains [domain.NumBands]float64, _ time.Duration) {
	eq := gainsToEqualizer(gains)

	c.mu.Lock()
	c.filters.Equalizer = &eq
	filters := c.filters
	c.mu.Unlock()

	c.enqueue(lavalink.WithFilters(filters))
}

func (c *Chain) ApplyCompressor(settings domain.CompressorSettings) {
	slog.Debug("compressor not supported on lavalink backend",
		"threshold_db", settings.ThresholdDB)
}

func (c *Chain) ApplySpatial(settings domain.SpatialSettings) {
	c.mu.Lock()
	c.filters.Rotation = spatialToRotation(settings)
	filters := c.filters
	c.mu.Unlock()

	c.enqueue(lavalink.WithFilters(filters))
}

func (c *Chain) ApplyRate(rate float64) {
	c.mu.Lock()
	c.filters.Timescale = &lavalink.Timescale{Rate: rate}
	filters := c.filters
	c.mu.Unlock()

	c.enqueue(lavalink.WithFilters(filters))
}

// ApplyVolume sets the player volume. Lavalink has no fade primitive, so
// the change lands immediately regardless of the requested fade.
func (c *Chain) ApplyVolume(volume float64, _ time.Duration) {
	c.enqueue(lavalink.WithVolume(int(volume * 100)))
}

// AnalysisSnapshot is unsupported: the server exposes filter control only,
// not sample data.
func (c *Chain) AnalysisSnapshot() (domain.Analysis, error) {
	return domain.Analysis{}, ports.ErrAnalysisUnsupported
}

func (c *Chain) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done

		ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
		defer cancel()
		if err := c.player.Update(ctx, lavalink.WithNullTrack()); err != nil {
			slog.Warn("failed to stop remote player", "error", err)
		}
	})
	return nil
}
