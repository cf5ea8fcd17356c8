package database

import (
	"context"

	"github.com/dasfruit808/AstroCat-backend/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schéma appliqué au démarrage. Les DDL sont idempotents, pas de versioning.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id UUID PRIMARY KEY,
		device_id TEXT NOT NULL UNIQUE,
		player_name TEXT NOT NULL,
		score BIGINT NOT NULL,
		time_ms BIGINT NOT NULL,
		best_streak INT NOT NULL DEFAULT 0,
		nyan INT NOT NULL DEFAULT 0,
		recorded_at TIMESTAMPTZ NOT NULL,
		week_start TIMESTAMPTZ NOT NULL,
		client_submission_id TEXT UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_ranking
		ON scores (score DESC, time_ms DESC, recorded_at ASC)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_week_start
		ON scores (week_start)`,
	`CREATE TABLE IF NOT EXISTS run_tokens (
		token_id TEXT PRIMARY KEY,
		device_id TEXT NOT NULL,
		issued_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_tokens_expires_at
		ON run_tokens (expires_at)`,
	`CREATE TABLE IF NOT EXISTS rate_limits (
		identifier TEXT NOT NULL,
		window_key BIGINT NOT NULL,
		count BIGINT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (identifier, window_key)
	)`,
}

// EnsureSchema crée les tables manquantes au démarrage.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	logger.Info("Database schema ensured (%d statements)", len(schemaStatements))
	return nil
}
