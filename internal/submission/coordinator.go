// Package submission orchestre le protocole de soumission de score : jeton,
// rate limit, idempotence, règle du meilleur run conservé, puis classements.
package submission

import (
	"context"
	"strings"
	"time"

	"github.com/dasfruit808/AstroCat-backend/internal/apperr"
	"github.com/dasfruit808/AstroCat-backend/internal/leaderboard"
	"github.com/dasfruit808/AstroCat-backend/internal/logger"
	model "github.com/dasfruit808/AstroCat-backend/internal/models"
	"github.com/dasfruit808/AstroCat-backend/internal/ratelimit"
	"github.com/dasfruit808/AstroCat-backend/internal/scores"
	"github.com/dasfruit808/AstroCat-backend/internal/token"
	"github.com/google/uuid"
)

// Au-delà, les scores et durées sont écrêtés. Large, mais exact en float64.
const maxNumericValue = 1_000_000_000_000_000

// Input est une soumission brute, telle que reçue du client.
type Input struct {
	PlayerName         string
	DeviceID           string
	RunToken           string
	ClientIP           string
	Score              float64
	TimeMs             float64
	BestStreak         float64
	Nyan               float64
	RecordedAtMs       float64 // epoch millis, 0 = maintenant
	ClientSubmissionID string
}

type Outcome string

const (
	// OutcomeCreated : le run a été persisté (insertion ou remplacement).
	OutcomeCreated Outcome = "created"
	// OutcomeDuplicate : rejeu idempotent, le run était déjà enregistré.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeConflict : le run existant domine, rien n'a été écrit.
	OutcomeConflict Outcome = "conflict"
)

// Result est l'issue d'une soumission qui a atteint une décision métier.
// Les refus (validation, auth, rate limit, interne) sortent en erreur typée.
type Result struct {
	Outcome      Outcome
	Placement    *int
	Leaderboards map[string][]model.LeaderboardEntry
	FetchedAt    time.Time
	Message      string
}

type Coordinator struct {
	tokens    *token.Authority
	limiter   *ratelimit.Limiter
	repo      scores.Repository
	view      *leaderboard.View
	placement *leaderboard.PlacementCalculator
	now       func() time.Time
}

func NewCoordinator(tokens *token.Authority, limiter *ratelimit.Limiter, repo scores.Repository) *Coordinator {
	return &Coordinator{
		tokens:    tokens,
		limiter:   limiter,
		repo:      repo,
		view:      leaderboard.NewView(repo),
		placement: leaderboard.NewPlacementCalculator(repo),
		now:       time.Now,
	}
}

// Submit déroule la machine à états d'une soumission. Chaque étape est une
// sortie possible ; le jeton n'est consommé que sur les issues qui
// représentent un effet autorisé accompli (création ou rejeu idempotent).
func (c *Coordinator) Submit(ctx context.Context, in Input) (*Result, error) {
	// 1. Présence des champs obligatoires
	deviceID := strings.TrimSpace(in.DeviceID)
	if deviceID == "" {
		return nil, apperr.Validation("deviceId is required")
	}
	if in.RunToken == "" {
		return nil, apperr.Validation("runToken is required")
	}

	// 2. Validation du jeton, sans le consommer encore
	claims, err := c.tokens.Validate(ctx, in.RunToken, deviceID)
	if err != nil {
		return nil, err
	}

	// Libération gardée du jeton : une seule tentative de suppression, armée
	// uniquement sur les issues accomplies. Un échec est loggé sans changer
	// la réponse déjà décidée.
	consume := false
	defer func() {
		if !consume {
			return
		}
		if err := c.tokens.Consume(ctx, claims.TokenID); err != nil {
			logger.Warning("run token cleanup failed for %s: %v", claims.TokenID, err)
		}
	}()

	// 3. Nettoyage et écrêtage des champs
	playerName := scores.SanitizePlayerName(in.PlayerName)
	score := scores.ClampInt64(in.Score, 0, maxNumericValue)
	timeMs := scores.ClampInt64(in.TimeMs, 0, maxNumericValue)
	bestStreak := int(scores.ClampInt64(in.BestStreak, 0, scores.MaxBestStreak))
	nyan := int(scores.ClampInt64(in.Nyan, 0, scores.MaxNyan))

	recordedAt := c.now()
	if ms := scores.ClampInt64(in.RecordedAtMs, 0, maxNumericValue); ms > 0 {
		recordedAt = time.UnixMilli(ms)
	}

	// 4. Un run sans score ni durée n'est pas un run
	if score <= 0 || timeMs <= 0 {
		return nil, apperr.Validation("score and timeMs must be positive")
	}

	// 5. Rate limit, après la validation de base mais avant toute écriture
	decision, err := c.limiter.Enforce(ctx, deviceID+":"+in.ClientIP)
	if err != nil {
		return nil, apperr.Internal("could not check rate limit", err)
	}
	if !decision.Allowed {
		return nil, apperr.RateLimit("too many submissions, try again later", decision.RetryAt)
	}

	// 6. Rejeu idempotent : l'effet voulu est déjà durablement enregistré,
	// donc le jeton est consommé et on renvoie le run stocké
	if in.ClientSubmissionID != "" {
		existing, err := c.repo.FindByClientSubmissionID(ctx, in.ClientSubmissionID)
		if err != nil {
			return nil, apperr.Internal("could not check submission id", err)
		}
		if existing != nil {
			consume = true
			return c.buildResult(ctx, OutcomeDuplicate, existing,
				"duplicate submission: returning the previously recorded run")
		}
	}

	// 7. Règle du meilleur run conservé
	current, err := c.repo.FindByDevice(ctx, deviceID)
	if err != nil {
		return nil, apperr.Internal("could not load current best run", err)
	}
	if current != nil && !beats(score, timeMs, current) {
		// Aucune écriture autorisée n'a eu lieu : le jeton reste disponible
		return c.buildResult(ctx, OutcomeConflict, nil,
			"an equal or better run is already recorded for this device")
	}

	// 8. Persistance : remplacement en place ou insertion
	rec := model.ScoreRecord{
		DeviceID:           deviceID,
		PlayerName:         playerName,
		Score:              score,
		TimeMs:             timeMs,
		BestStreak:         bestStreak,
		Nyan:               nyan,
		RecordedAt:         recordedAt,
		WeekStart:          scores.WeekStart(recordedAt),
		ClientSubmissionID: in.ClientSubmissionID,
	}
	if current != nil {
		rec.ID = current.ID
		if err := c.repo.Update(ctx, rec); err != nil {
			return nil, apperr.Internal("could not update score", err)
		}
	} else {
		rec.ID = uuid.NewString()
		if err := c.repo.Insert(ctx, rec); err != nil {
			return nil, apperr.Internal("could not insert score", err)
		}
	}

	// 9. Effet accompli : consommation du jeton, classements et rang
	consume = true
	return c.buildResult(ctx, OutcomeCreated, &rec, "")
}

// beats dit si le run entrant est strictement meilleur que le record courant
// sous l'ordre (score desc, timeMs desc).
func beats(score, timeMs int64, current *model.ScoreRecord) bool {
	if score != current.Score {
		return score > current.Score
	}
	return timeMs > current.TimeMs
}

// buildResult assemble les deux classements (récupérés en parallèle) et le
// rang du run concerné. Pour un conflit, rec est nil et le rang reste nul.
func (c *Coordinator) buildResult(ctx context.Context, outcome Outcome, rec *model.ScoreRecord, message string) (*Result, error) {
	boards, err := c.view.FetchAll(ctx, []scores.Scope{scores.ScopeGlobal, scores.ScopeWeekly})
	if err != nil {
		return nil, apperr.Internal("could not build leaderboards", err)
	}

	var placement *int
	if rec != nil {
		placement = c.placement.Placement(ctx, rec.Score, rec.TimeMs, rec.RecordedAt)
	}

	return &Result{
		Outcome:      outcome,
		Placement:    placement,
		Leaderboards: boards,
		FetchedAt:    c.now(),
		Message:      message,
	}, nil
}
