package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlvaren/tonic/internal/app"
	_ "github.com/mlvaren/tonic/internal/modules/engine"
	_ "github.com/mlvaren/tonic/internal/modules/health"
	_ "github.com/mlvaren/tonic/internal/modules/mixer"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the player API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Configure JSON logging
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

		slog.Info("starting tonic", "version", version)

		cfg, err := app.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		server := app.NewServer(cfg)
		server.LoadModules()

		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		// Wait for shutdown signal
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		slog.Info("received termination signal, shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			slog.Error("failed to shutdown", "error", err)
		}

		slog.Info("completed server shutdown")
		return nil
	},
}
