// Package token émet et valide les jetons de run : signés HMAC-SHA256,
// liés à un device, à usage unique via l'enregistrement serveur.
package token

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dasfruit808/AstroCat-backend/internal/apperr"
	model "github.com/dasfruit808/AstroCat-backend/internal/models"
	"github.com/google/uuid"
)

// SkewBuffer rejette les jetons qui expirent dans moins d'une seconde,
// pour couvrir la dérive d'horloge entre client et serveur.
const SkewBuffer = 1000 * time.Millisecond

const maxDeviceIDLen = 64

// Store persiste les jetons de run côté serveur. La suppression d'un
// enregistrement révoque le jeton, signature valide ou non.
type Store interface {
	Save(ctx context.Context, tok model.RunToken) error
	// Get retourne (nil, nil) quand aucun enregistrement n'existe.
	Get(ctx context.Context, tokenID string) (*model.RunToken, error)
	Delete(ctx context.Context, tokenID string) error
}

// Claims est le résultat d'une validation réussie.
type Claims struct {
	TokenID   string
	ExpiresAt time.Time
}

type Authority struct {
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

// NewAuthority échoue si le secret de signature est absent : c'est une erreur
// de configuration fatale au démarrage, pas une erreur par requête.
func NewAuthority(secret string, ttl time.Duration, store Store) (*Authority, error) {
	if secret == "" {
		return nil, fmt.Errorf("token authority: signing secret is required")
	}
	return &Authority{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}, nil
}

// Issue génère un jeton frais pour un device et l'enregistre côté serveur.
// Format sérialisé : "<tokenId>.<expiresAtMs>.<base64url(signature)>".
func (a *Authority) Issue(ctx context.Context, deviceID string) (string, time.Time, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" || len(deviceID) > maxDeviceIDLen {
		return "", time.Time{}, apperr.Validation("deviceId is required (max 64 characters)")
	}

	now := a.now()
	tokenID := uuid.NewString()
	expiresAt := now.Add(a.ttl)

	sig := a.sign(tokenID, deviceID, expiresAt.UnixMilli())

	tok := model.RunToken{
		TokenID:   tokenID,
		DeviceID:  deviceID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := a.store.Save(ctx, tok); err != nil {
		return "", time.Time{}, apperr.Internal("could not store run token", err)
	}

	serialized := fmt.Sprintf("%s.%d.%s", tokenID, expiresAt.UnixMilli(), sig)
	return serialized, expiresAt, nil
}

// Validate vérifie un jeton présenté pour un device. La validation ne consomme
// jamais le jeton : la suppression revient à l'appelant une fois l'action
// protégée réellement effectuée.
func (a *Authority) Validate(ctx context.Context, serialized, deviceID string) (*Claims, error) {
	parts := strings.Split(serialized, ".")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return nil, apperr.Auth("malformed run token")
	}
	tokenID, expiresStr, providedSig := parts[0], parts[1], parts[2]

	expiresMs, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return nil, apperr.Auth("malformed run token")
	}

	if a.now().UnixMilli() > expiresMs-SkewBuffer.Milliseconds() {
		return nil, apperr.Auth("run token expired")
	}

	// Comparaison en temps constant de la signature recalculée
	expectedSig := a.sign(tokenID, deviceID, expiresMs)
	if !hmac.Equal([]byte(expectedSig), []byte(providedSig)) {
		return nil, apperr.Auth("invalid run token signature")
	}

	stored, err := a.store.Get(ctx, tokenID)
	if err != nil {
		return nil, apperr.Internal("could not look up run token", err)
	}
	if stored == nil {
		return nil, apperr.Auth("run token already used or expired")
	}
	if stored.DeviceID != deviceID {
		return nil, apperr.Auth("run token does not match this device")
	}
	if a.now().After(stored.ExpiresAt) {
		// Enregistrement périmé resté en base : on le purge au passage
		if err := a.store.Delete(ctx, tokenID); err != nil {
			return nil, apperr.Internal("could not delete stale run token", err)
		}
		return nil, apperr.Auth("run token expired")
	}

	return &Claims{TokenID: tokenID, ExpiresAt: stored.ExpiresAt}, nil
}

// Consume supprime l'enregistrement serveur, révoquant le jeton (usage unique).
func (a *Authority) Consume(ctx context.Context, tokenID string) error {
	return a.store.Delete(ctx, tokenID)
}

// sign calcule base64url(HMAC-SHA256("<tokenId>.<deviceId>.<expiresAtMs>")), sans padding.
func (a *Authority) sign(tokenID, deviceID string, expiresMs int64) string {
	mac := hmac.New(sha256.New, a.secret)
	fmt.Fprintf(mac, "%s.%s.%d", tokenID, deviceID, expiresMs)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
