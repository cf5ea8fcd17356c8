package main

import (
	"context"
	"net/http"
	"os"

	"github.com/dasfruit808/AstroCat-backend/internal/api"
	"github.com/dasfruit808/AstroCat-backend/internal/config"
	"github.com/dasfruit808/AstroCat-backend/internal/database"
	"github.com/dasfruit808/AstroCat-backend/internal/handler"
	"github.com/dasfruit808/AstroCat-backend/internal/leaderboard"
	"github.com/dasfruit808/AstroCat-backend/internal/logger"
	"github.com/dasfruit808/AstroCat-backend/internal/ratelimit"
	"github.com/dasfruit808/AstroCat-backend/internal/scores"
	"github.com/dasfruit808/AstroCat-backend/internal/submission"
	"github.com/dasfruit808/AstroCat-backend/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	pool, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(context.Background(), pool); err != nil {
		logger.Error("Schema setup failed: %v", err)
		os.Exit(1)
	}

	// Wire components: every dependency is built once here and passed down
	tokens, err := token.NewAuthority(cfg.SigningSecret, cfg.RunTokenTTL(), token.NewPostgresStore(pool))
	if err != nil {
		logger.Error("Token authority setup failed: %v", err)
		os.Exit(1)
	}
	limiter := ratelimit.New(ratelimit.NewPostgresStore(pool), cfg.RateLimit, cfg.RateWindow())
	repo := scores.NewPostgresRepository(pool)
	coordinator := submission.NewCoordinator(tokens, limiter, repo)
	view := leaderboard.NewView(repo)

	h := handler.New(tokens, coordinator, view, pool)
	router := api.SetupRouter(h)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
