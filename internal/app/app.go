package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Server manages the HTTP server lifecycle and module coordination.
type Server struct {
	config  *Config
	db      *gorm.DB
	router  *gin.Engine
	httpSrv *http.Server
	modules []Module
}

// NewServer creates a new Server instance with the given configuration.
func NewServer(cfg *Config) *Server {
	return &Server{
		config:  cfg,
		modules: make([]Module, 0),
	}
}

// LoadModules loads modules from the global registry.
func (s *Server) LoadModules() {
	s.modules = Modules()
}

// DB returns the shared database handle. Nil before Start.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Start opens the database, initializes modules, and begins serving HTTP.
func (s *Server) Start() error {
	db, err := gorm.Open(sqlite.Open(s.config.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Load module configuration
	if err := s.loadModuleConfigs(); err != nil {
		return fmt.Errorf("failed to load module configuration: %w", err)
	}

	// Initialize modules
	if err := s.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	// Build router and register module routes
	s.router = s.buildRouter()

	s.httpSrv = &http.Server{
		Addr:              s.config.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
	}()

	slog.Info("started server", "addr", s.config.HTTPAddr)

	return nil
}

// Stop gracefully shuts down the server. The HTTP server drains first so no
// request is still running against a module being shut down.
func (s *Server) Stop(ctx context.Context) error {
	// Stop accepting connections and drain in-flight requests
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}
	}

	// Shutdown modules
	for _, mod := range s.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	// Close database
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return fmt.Errorf("failed to access database handle: %w", err)
		}
		return sqlDB.Close()
	}

	return nil
}

// loadModuleConfigs calls LoadConfig on every configurable module.
func (s *Server) loadModuleConfigs() error {
	for _, mod := range s.modules {
		configurable, ok := mod.(ConfigurableModule)
		if !ok {
			continue
		}
		if err := configurable.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
		}
	}
	return nil
}

// initModules initializes all loaded modules.
func (s *Server) initModules() error {
	deps := ModuleDependencies{
		Config: s.config,
		DB:     s.db,
	}

	for _, mod := range s.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(s.modules))
	for i, mod := range s.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildRouter assembles the gin engine and mounts every module under /api.
func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api")
	for _, mod := range s.modules {
		mod.RegisterRoutes(api)
	}

	return router
}

// requestLogger logs each request through slog in the same shape as the
// rest of the application's logs.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
