package scores

import (
	"context"
	"time"

	model "github.com/dasfruit808/AstroCat-backend/internal/models"
)

// Scope sélectionne la vue de classement.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeWeekly Scope = "weekly"
)

// Repository est la frontière de persistance des runs. Le coordinateur et les
// vues ne connaissent que ce contrat, pas le store qui le réalise.
type Repository interface {
	// FindByClientSubmissionID retourne (nil, nil) si la clé d'idempotence est inconnue.
	FindByClientSubmissionID(ctx context.Context, id string) (*model.ScoreRecord, error)
	// FindByDevice retourne (nil, nil) si le device n'a pas de record.
	FindByDevice(ctx context.Context, deviceID string) (*model.ScoreRecord, error)
	Insert(ctx context.Context, rec model.ScoreRecord) error
	Update(ctx context.Context, rec model.ScoreRecord) error
	// CountBetterThan compte les records strictement meilleurs que le tuple
	// donné sous l'ordre (score desc, time_ms desc, recorded_at asc).
	CountBetterThan(ctx context.Context, score, timeMs int64, recordedAt time.Time) (int, error)
	// TopCandidates retourne au plus limit records ordonnés par
	// (score desc, time_ms desc, recorded_at asc), restreints à la semaine
	// courante pour ScopeWeekly.
	TopCandidates(ctx context.Context, scope Scope, limit int) ([]model.ScoreRecord, error)
}
