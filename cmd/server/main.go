// Package main implements the entry point for the ProEvals API server,
// which serves product-management drills, calibration scoring, streak
// tracking, and leaderboards.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/proevals/proevals-api/internal/config"
	"github.com/proevals/proevals-api/internal/platform/logger"
	"github.com/proevals/proevals-api/internal/platform/postgres"
)

// main loads configuration, sets up logging, connects to the database,
// builds the application and runs the HTTP server until shutdown.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

// run holds the real startup sequence so main stays a thin error boundary.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	slog.SetDefault(appLogger)

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	appLogger.Info("Database migrations applied")

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
