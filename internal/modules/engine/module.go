package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gin-gonic/gin"

	"github.com/mlvaren/tonic/internal/app"
	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
	"github.com/mlvaren/tonic/internal/modules/engine/application/usecases"
	"github.com/mlvaren/tonic/internal/modules/engine/domain"
	"github.com/mlvaren/tonic/internal/modules/engine/infrastructure/dsp"
	"github.com/mlvaren/tonic/internal/modules/engine/infrastructure/lavalink"
	"github.com/mlvaren/tonic/internal/modules/engine/infrastructure/settings"
	enginehttp "github.com/mlvaren/tonic/internal/modules/engine/presentation/http"
)

func init() {
	app.Register(&EngineModule{})
}

// Compile-time interface checks.
var _ app.ConfigurableModule = (*EngineModule)(nil)

// EngineModule owns the audio signal chain: the graph service, its backend,
// and the persisted settings file.
type EngineModule struct {
	config  *Config
	graph   *usecases.GraphService
	store   *settings.Store
	handler *enginehttp.Handler

	unsubscribe func()
	stopWatcher func()
	stopSaver   func()
}

// Name returns the module name.
func (m *EngineModule) Name() string {
	return "engine"
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *EngineModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *EngineModule) Init(deps app.ModuleDependencies) error {
	backend, err := m.buildBackend()
	if err != nil {
		return err
	}

	m.graph = usecases.NewGraphService(backend)
	m.store = settings.NewStore(m.config.SettingsPath)
	m.handler = enginehttp.NewHandler(m.graph)

	// Restore persisted state before anything can observe the graph.
	loaded, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load audio settings: %w", err)
	}
	m.graph.ApplySettings(loaded)

	m.startPersistence(loaded)

	return nil
}

// buildBackend constructs the configured audio backend. "none" leaves the
// graph without one, which surfaces as an unsupported-platform error on
// initialization.
func (m *EngineModule) buildBackend() (ports.Backend, error) {
	switch m.config.Backend {
	case BackendNative:
		return dsp.NewBackend(&dsp.NullSink{SampleRate: m.config.SampleRate}), nil

	case BackendLavalink:
		userID, err := snowflake.Parse(m.config.LavalinkUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse LAVALINK_USER_ID: %w", err)
		}
		playerID, err := snowflake.Parse(m.config.LavalinkPlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse LAVALINK_PLAYER_ID: %w", err)
		}
		return lavalink.NewBackend(context.Background(), lavalink.Config{
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
			Secure:   m.config.LavalinkSecure,
			UserID:   userID,
			PlayerID: playerID,
		})

	case BackendNone:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown audio backend %q", m.config.Backend)
	}
}

// startPersistence wires the two directions of settings flow: parameter
// changes are saved to disk, external file edits are applied to the graph.
// Saves are skipped when nothing changed, so a watcher-triggered reapply
// never echoes back into another save.
func (m *EngineModule) startPersistence(lastSaved ports.GraphSettings) {
	// dirty is never closed: a notification from a still-draining request
	// may arrive after the saver stopped, and must not panic.
	dirty := make(chan struct{}, 1)
	quit := make(chan struct{})
	done := make(chan struct{})

	m.unsubscribe = m.graph.Subscribe(func(_ domain.Change) {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(done)
		for {
			select {
			case <-quit:
				return
			case <-dirty:
			}
			current := m.graph.Settings()
			if current == lastSaved {
				continue
			}
			if err := m.store.Save(current); err != nil {
				slog.Warn("failed to save audio settings", "error", err)
				continue
			}
			lastSaved = current
		}
	}()
	m.stopSaver = func() {
		close(quit)
		<-done
	}

	stop, err := m.store.Watch(func(s ports.GraphSettings) {
		m.graph.ApplySettings(s)
	})
	if err != nil {
		slog.Warn("settings file watching disabled", "error", err)
	} else {
		m.stopWatcher = stop
	}
}

// RegisterRoutes mounts the engine endpoints on the shared API group.
func (m *EngineModule) RegisterRoutes(api *gin.RouterGroup) {
	m.handler.RegisterRoutes(api)
}

// Shutdown gracefully shuts down the module.
func (m *EngineModule) Shutdown() error {
	if m.stopWatcher != nil {
		m.stopWatcher()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	if m.stopSaver != nil {
		m.stopSaver()
	}
	if m.graph != nil {
		m.graph.Teardown()
	}
	return nil
}
