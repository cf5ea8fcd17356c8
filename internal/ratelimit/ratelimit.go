// Package ratelimit compte les requêtes par identifiant sur des fenêtres fixes.
package ratelimit

import (
	"context"
	"time"
)

// CounterStore incrémente le compteur d'une fenêtre et retourne la valeur
// après incrément. L'incrément doit être atomique : deux requêtes concurrentes
// ne peuvent pas observer la même valeur.
type CounterStore interface {
	Incr(ctx context.Context, identifier string, windowKey int64, expiresAt time.Time) (int64, error)
}

// Decision est le verdict du limiteur pour une requête.
type Decision struct {
	Allowed bool
	RetryAt time.Time // début de la fenêtre suivante, renseigné sur refus
}

type Limiter struct {
	store  CounterStore
	limit  int64
	window time.Duration
	now    func() time.Time
}

func New(store CounterStore, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Enforce admet ou refuse une requête pour un identifiant. Un identifiant vide
// passe toujours : sans identité, rien à limiter.
func (l *Limiter) Enforce(ctx context.Context, identifier string) (Decision, error) {
	if identifier == "" {
		return Decision{Allowed: true}, nil
	}

	nowMs := l.now().UnixMilli()
	windowMs := l.window.Milliseconds()
	windowKey := nowMs / windowMs
	windowEnd := time.UnixMilli((windowKey + 1) * windowMs)

	count, err := l.store.Incr(ctx, identifier, windowKey, windowEnd)
	if err != nil {
		return Decision{}, err
	}

	if count > l.limit {
		return Decision{Allowed: false, RetryAt: windowEnd}, nil
	}
	return Decision{Allowed: true}, nil
}
