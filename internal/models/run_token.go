package model

import "time"

// RunToken est l'enregistrement serveur d'un jeton de run, supprimé à la consommation
type RunToken struct {
	TokenID   string    `json:"tokenId"`
	DeviceID  string    `json:"deviceId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
