package token

import (
	"context"
	"errors"

	"github.com/dasfruit808/AstroCat-backend/internal/logger"
	model "github.com/dasfruit808/AstroCat-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persiste les jetons de run dans la table run_tokens.
// PostgreSQL n'expire pas les lignes tout seul : l'expiration est portée par
// le prédicat sur expires_at et un balayage opportuniste à l'émission.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, tok model.RunToken) error {
	// Balayage des jetons morts, silencieux en cas d'échec
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM run_tokens WHERE expires_at < NOW()`); err != nil {
		logger.Warning("run token sweep failed: %v", err)
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO run_tokens(token_id, device_id, issued_at, expires_at)
		 VALUES($1, $2, $3, $4)`,
		tok.TokenID, tok.DeviceID, tok.IssuedAt, tok.ExpiresAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, tokenID string) (*model.RunToken, error) {
	var tok model.RunToken
	err := s.pool.QueryRow(ctx,
		`SELECT token_id, device_id, issued_at, expires_at
		 FROM run_tokens WHERE token_id = $1`,
		tokenID,
	).Scan(&tok.TokenID, &tok.DeviceID, &tok.IssuedAt, &tok.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func (s *PostgresStore) Delete(ctx context.Context, tokenID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM run_tokens WHERE token_id = $1`, tokenID)
	return err
}
