package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/proevals/proevals-api/internal/config"
	"github.com/proevals/proevals-api/internal/domain/srs"
	"github.com/proevals/proevals-api/internal/platform/postgres"
	"github.com/proevals/proevals-api/internal/service/auth"
	"github.com/proevals/proevals-api/internal/service/content"
	"github.com/proevals/proevals-api/internal/service/drill"
	"github.com/proevals/proevals-api/internal/service/leaderboard"
	"github.com/proevals/proevals-api/internal/service/user"
	"github.com/proevals/proevals-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	drillStore    store.DrillStore
	progressStore store.ProgressStore

	// Service interfaces
	jwtService         auth.JWTService
	passwordHasher     auth.PasswordHasher
	passwordVerifier   auth.PasswordVerifier
	srsService         srs.Service
	drillService       drill.Service
	leaderboardService leaderboard.Service
	contentService     content.Service
	userService        user.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	// Initialize password hashing
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordHasher = hasher
	app.passwordVerifier = hasher

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db)
	app.drillStore = postgres.NewPostgresDrillStore(db)
	app.progressStore = postgres.NewPostgresProgressStore(db)

	// Initialize SRS scheduling service
	app.srsService = srs.NewDefaultService()

	// Initialize domain services
	app.drillService = drill.NewService(
		app.userStore,
		app.drillStore,
		app.progressStore,
		app.srsService,
		logger,
	)
	app.leaderboardService = leaderboard.NewService(
		app.userStore,
		app.drillStore,
		app.progressStore,
		logger,
	)
	app.contentService = content.NewService(app.drillStore, logger)
	app.userService = user.NewService(
		app.userStore,
		app.progressStore,
		app.passwordHasher,
		app.passwordVerifier,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
