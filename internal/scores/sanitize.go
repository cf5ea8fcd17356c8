// Package scores porte le contrat de persistance des runs et la
// normalisation des champs soumis par le client.
package scores

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// DefaultPlayerName remplace un nom vide après nettoyage.
const DefaultPlayerName = "Ace Pilot"

const maxPlayerNameLen = 24

// Bornes des champs annexes d'un run.
const (
	MaxBestStreak = 9999
	MaxNyan       = 1_000_000
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^A-Za-z0-9 _-]`)
)

// SanitizePlayerName normalise un nom de joueur : trim, espaces réduits,
// caractères hors [A-Za-z0-9 _-] retirés, tronqué à 24, défaut "Ace Pilot".
func SanitizePlayerName(raw string) string {
	name := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	name = disallowedRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if len(name) > maxPlayerNameLen {
		name = strings.TrimSpace(name[:maxPlayerNameLen])
	}
	if name == "" {
		return DefaultPlayerName
	}
	return name
}

// ClampInt64 ramène une valeur dans [min, max] en l'arrondissant vers le bas.
// Les valeurs non finies retombent sur le minimum.
func ClampInt64(v float64, min, max int64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return min
	}
	f := math.Floor(v)
	if f < float64(min) {
		return min
	}
	if f > float64(max) {
		return max
	}
	return int64(f)
}

// WeekStart retourne le lundi 00:00 UTC de la semaine contenant t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
