package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlvaren/tonic/internal/app"
)

func init() {
	app.Register(&HealthModule{})
}

// HealthModule provides the liveness endpoint.
type HealthModule struct {
	startedAt time.Time
}

// Name returns the module name.
func (m *HealthModule) Name() string {
	return "health"
}

// Init initializes the module.
func (m *HealthModule) Init(deps app.ModuleDependencies) error {
	m.startedAt = time.Now().UTC()
	return nil
}

// RegisterRoutes mounts the health endpoint on the shared API group.
func (m *HealthModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/healthz", m.handleHealthz)
}

func (m *HealthModule) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(m.startedAt).String(),
	})
}

// Shutdown cleans up module resources.
func (m *HealthModule) Shutdown() error {
	return nil
}
