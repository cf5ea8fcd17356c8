package ratelimit

import (
	"context"
	"time"

	"github.com/dasfruit808/AstroCat-backend/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore compte dans la table rate_limits. L'upsert incrémente et lit
// en une seule instruction, donc le comptage reste exact sous concurrence.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Incr(ctx context.Context, identifier string, windowKey int64, expiresAt time.Time) (int64, error) {
	// Balayage des fenêtres closes, silencieux en cas d'échec
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM rate_limits WHERE expires_at < NOW()`); err != nil {
		logger.Warning("rate limit sweep failed: %v", err)
	}

	var count int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO rate_limits(identifier, window_key, count, expires_at)
		 VALUES($1, $2, 1, $3)
		 ON CONFLICT (identifier, window_key)
		 DO UPDATE SET count = rate_limits.count + 1
		 RETURNING count`,
		identifier, windowKey, expiresAt,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
