package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/proevals/proevals-api/internal/api"
	apiMiddleware "github.com/proevals/proevals-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	drillHandler := api.NewDrillHandler(app.drillService, app.logger)
	leaderboardHandler := api.NewLeaderboardHandler(app.leaderboardService, app.logger)
	contentHandler := api.NewContentHandler(app.contentService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Drill-taking endpoints
			r.Get("/drills/next", drillHandler.NextDrill)
			r.Post("/drills/{id}/attempt", drillHandler.SubmitAttempt)
			r.Get("/drills/quota", drillHandler.QuotaStatus)
			r.Post("/drills/{id}/save", drillHandler.ToggleSaved)

			// Content management endpoints
			r.Get("/drills", contentHandler.List)
			r.Post("/drills/import", contentHandler.Import)
			r.Put("/drills/{id}", contentHandler.Update)
			r.Delete("/drills/{id}", contentHandler.Delete)

			// Account endpoints
			r.Get("/users/me", userHandler.GetProfile)
			r.Put("/users/me", userHandler.UpdateProfile)
			r.Delete("/users/me", userHandler.DeleteAccount)
			r.Post("/users/me/password", userHandler.ChangePassword)
			r.Get("/users/me/stats", drillHandler.UserStats)

			// Leaderboard endpoints
			r.Get("/leaderboard/skills/{category}", leaderboardHandler.Skill)
			r.Get("/leaderboard/skills/{category}/me", leaderboardHandler.SkillStatus)
			r.Get("/leaderboard/{period}", leaderboardHandler.Global)
			r.Get("/leaderboard/{period}/me", leaderboardHandler.GlobalStatus)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
