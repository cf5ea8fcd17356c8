// Package leaderboard construit les vues de classement et le rang d'un run.
package leaderboard

import (
	"context"
	"strings"
	"sync"

	model "github.com/dasfruit808/AstroCat-backend/internal/models"
	"github.com/dasfruit808/AstroCat-backend/internal/scores"
)

// MaxEntries est la taille maximale d'un classement renvoyé au client.
const MaxEntries = 50

// Tailles des viviers de candidats. Le nom public étant la clé de dédup (pas
// le device), le vivier doit être assez large pour que la dédup par nom
// n'assèche pas la liste finale.
const (
	globalPoolSize = 200
	weeklyPoolSize = 120
)

type View struct {
	repo scores.Repository
}

func NewView(repo scores.Repository) *View {
	return &View{repo: repo}
}

// Fetch construit le classement d'un scope : candidats ordonnés, dédupliqués
// par nom de joueur insensible à la casse, premier (mieux classé) conservé.
func (v *View) Fetch(ctx context.Context, scope scores.Scope) ([]model.LeaderboardEntry, error) {
	poolSize := globalPoolSize
	if scope == scores.ScopeWeekly {
		poolSize = weeklyPoolSize
	}

	candidates, err := v.repo.TopCandidates(ctx, scope, poolSize)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, MaxEntries)
	seen := make(map[string]bool, MaxEntries)
	for _, rec := range candidates {
		key := strings.ToLower(scores.SanitizePlayerName(rec.PlayerName))
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, model.LeaderboardEntry{
			Player:     rec.PlayerName,
			Score:      rec.Score,
			TimeMs:     rec.TimeMs,
			BestStreak: rec.BestStreak,
			Nyan:       rec.Nyan,
			RecordedAt: rec.RecordedAt,
		})
		if len(entries) == MaxEntries {
			break
		}
	}
	return entries, nil
}

// FetchAll récupère plusieurs scopes en parallèle : aucune dépendance d'ordre
// entre eux, on joint avant de répondre.
func (v *View) FetchAll(ctx context.Context, scopeList []scores.Scope) (map[string][]model.LeaderboardEntry, error) {
	results := make(map[string][]model.LeaderboardEntry, len(scopeList))
	errs := make([]error, len(scopeList))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i, scope := range scopeList {
		wg.Add(1)
		go func(i int, scope scores.Scope) {
			defer wg.Done()
			entries, err := v.Fetch(ctx, scope)
			if err != nil {
				errs[i] = err
				return
			}
			mu.Lock()
			results[string(scope)] = entries
			mu.Unlock()
		}(i, scope)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
