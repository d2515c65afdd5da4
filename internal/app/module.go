package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Config *Config
	DB     *gorm.DB
}

// Module defines the interface that all application modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// RegisterRoutes mounts the module's endpoints on the shared API group.
	RegisterRoutes(api *gin.RouterGroup)

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Called before Init() and before the HTTP server starts listening.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
