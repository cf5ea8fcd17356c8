package leaderboard

import (
	"context"
	"time"

	"github.com/dasfruit808/AstroCat-backend/internal/logger"
	"github.com/dasfruit808/AstroCat-backend/internal/scores"
)

type PlacementCalculator struct {
	repo scores.Repository
}

func NewPlacementCalculator(repo scores.Repository) *PlacementCalculator {
	return &PlacementCalculator{repo: repo}
}

// Placement retourne le rang 1-based d'un tuple (score, timeMs, recordedAt)
// sous l'ordre score desc, timeMs desc, recordedAt asc. Le rang est purement
// informatif : si le comptage échoue, on retourne nil plutôt qu'une erreur.
func (p *PlacementCalculator) Placement(ctx context.Context, score, timeMs int64, recordedAt time.Time) *int {
	better, err := p.repo.CountBetterThan(ctx, score, timeMs, recordedAt)
	if err != nil {
		logger.Warning("placement lookup failed: %v", err)
		return nil
	}
	rank := better + 1
	return &rank
}
