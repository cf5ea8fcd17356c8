package scores

import (
	"context"
	"errors"
	"time"

	model "github.com/dasfruit808/AstroCat-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const scoreColumns = `id, device_id, player_name, score, time_ms, best_streak, nyan,
	recorded_at, week_start, COALESCE(client_submission_id, ''), created_at, updated_at`

// PostgresRepository réalise le contrat Repository sur la table scores.
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: time.Now}
}

func scanRecord(row pgx.Row) (*model.ScoreRecord, error) {
	var rec model.ScoreRecord
	err := row.Scan(
		&rec.ID, &rec.DeviceID, &rec.PlayerName, &rec.Score, &rec.TimeMs,
		&rec.BestStreak, &rec.Nyan, &rec.RecordedAt, &rec.WeekStart,
		&rec.ClientSubmissionID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresRepository) FindByClientSubmissionID(ctx context.Context, id string) (*model.ScoreRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE client_submission_id = $1`, id))
}

func (r *PostgresRepository) FindByDevice(ctx context.Context, deviceID string) (*model.ScoreRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE device_id = $1`, deviceID))
}

func (r *PostgresRepository) Insert(ctx context.Context, rec model.ScoreRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO scores(id, device_id, player_name, score, time_ms, best_streak,
			nyan, recorded_at, week_start, client_submission_id, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NOW(), NOW())`,
		rec.ID, rec.DeviceID, rec.PlayerName, rec.Score, rec.TimeMs,
		rec.BestStreak, rec.Nyan, rec.RecordedAt, rec.WeekStart, rec.ClientSubmissionID,
	)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, rec model.ScoreRecord) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE scores
		 SET player_name = $2, score = $3, time_ms = $4, best_streak = $5,
			nyan = $6, recorded_at = $7, week_start = $8,
			client_submission_id = COALESCE(NULLIF($9, ''), client_submission_id),
			updated_at = NOW()
		 WHERE id = $1`,
		rec.ID, rec.PlayerName, rec.Score, rec.TimeMs, rec.BestStreak,
		rec.Nyan, rec.RecordedAt, rec.WeekStart, rec.ClientSubmissionID,
	)
	return err
}

func (r *PostgresRepository) CountBetterThan(ctx context.Context, score, timeMs int64, recordedAt time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM scores
		 WHERE score > $1
			OR (score = $1 AND time_ms > $2)
			OR (score = $1 AND time_ms = $2 AND recorded_at < $3)`,
		score, timeMs, recordedAt,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) TopCandidates(ctx context.Context, scope Scope, limit int) ([]model.ScoreRecord, error) {
	query := `SELECT ` + scoreColumns + ` FROM scores
		 ORDER BY score DESC, time_ms DESC, recorded_at ASC
		 LIMIT $1`
	args := []interface{}{limit}

	if scope == ScopeWeekly {
		query = `SELECT ` + scoreColumns + ` FROM scores
		 WHERE recorded_at >= $2
		 ORDER BY score DESC, time_ms DESC, recorded_at ASC
		 LIMIT $1`
		args = append(args, WeekStart(r.now()))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ScoreRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
