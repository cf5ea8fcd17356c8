package model

import "time"

// ScoreRecord est le meilleur run conservé pour un appareil (un seul record actif par device_id)
type ScoreRecord struct {
	ID                 string    `json:"id"`
	DeviceID           string    `json:"deviceId"`
	PlayerName         string    `json:"playerName"`
	Score              int64     `json:"score"`
	TimeMs             int64     `json:"timeMs"`
	BestStreak         int       `json:"bestStreak"`
	Nyan               int       `json:"nyan"`
	RecordedAt         time.Time `json:"recordedAt"`
	WeekStart          time.Time `json:"weekStart"`
	ClientSubmissionID string    `json:"clientSubmissionId,omitempty"` // clé d'idempotence, optionnelle
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// LeaderboardEntry est une ligne de classement dérivée, jamais persistée
type LeaderboardEntry struct {
	Player     string    `json:"player"`
	Score      int64     `json:"score"`
	TimeMs     int64     `json:"timeMs"`
	BestStreak int       `json:"bestStreak"`
	Nyan       int       `json:"nyan"`
	RecordedAt time.Time `json:"recordedAt"`
}
