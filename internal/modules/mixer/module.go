package mixer

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mlvaren/tonic/internal/app"
	"github.com/mlvaren/tonic/internal/modules/mixer/application/usecases"
	"github.com/mlvaren/tonic/internal/modules/mixer/infrastructure"
	mixerhttp "github.com/mlvaren/tonic/internal/modules/mixer/presentation/http"
)

func init() {
	app.Register(&MixerModule{})
}

// MixerModule owns the track library, the feature cache, and smart mix
// generation.
type MixerModule struct {
	store   *infrastructure.GormStore
	handler *mixerhttp.Handler
}

// Name returns the module name.
func (m *MixerModule) Name() string {
	return "mixer"
}

// Init initializes the module.
func (m *MixerModule) Init(deps app.ModuleDependencies) error {
	if deps.DB == nil {
		return errors.New("mixer module requires a database")
	}

	store, err := infrastructure.NewGormStore(deps.DB)
	if err != nil {
		return err
	}
	m.store = store

	features := infrastructure.NewFeatureCache(infrastructure.NewHeuristicExtractor())
	mixes := usecases.NewMixService(store, features, store)
	m.handler = mixerhttp.NewHandler(mixes, store, store)

	return nil
}

// RegisterRoutes mounts the mixer endpoints on the shared API group.
func (m *MixerModule) RegisterRoutes(api *gin.RouterGroup) {
	m.handler.RegisterRoutes(api)
}

// Shutdown gracefully shuts down the module.
func (m *MixerModule) Shutdown() error {
	return nil
}
