package token

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dasfruit808/AstroCat-backend/internal/apperr"
	model "github.com/dasfruit808/AstroCat-backend/internal/models"
)

// memStore est un Store en mémoire pour les tests.
type memStore struct {
	mu   sync.Mutex
	toks map[string]model.RunToken
}

func newMemStore() *memStore {
	return &memStore{toks: make(map[string]model.RunToken)}
}

func (s *memStore) Save(_ context.Context, tok model.RunToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toks[tok.TokenID] = tok
	return nil
}

func (s *memStore) Get(_ context.Context, tokenID string) (*model.RunToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.toks[tokenID]
	if !ok {
		return nil, nil
	}
	return &tok, nil
}

func (s *memStore) Delete(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.toks, tokenID)
	return nil
}

func newTestAuthority(t *testing.T) (*Authority, *memStore) {
	t.Helper()
	store := newMemStore()
	a, err := NewAuthority("test-secret", 5*time.Minute, store)
	if err != nil {
		t.Fatalf("NewAuthority: %v", err)
	}
	return a, store
}

func TestNewAuthority_RequiresSecret(t *testing.T) {
	if _, err := NewAuthority("", time.Minute, newMemStore()); err == nil {
		t.Fatal("expected error for empty signing secret")
	}
}

func TestIssue_RejectsBadDeviceID(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	if _, _, err := a.Issue(ctx, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("empty deviceId: kind = %v, want KindValidation", apperr.KindOf(err))
	}
	long := strings.Repeat("x", 65)
	if _, _, err := a.Issue(ctx, long); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("long deviceId: kind = %v, want KindValidation", apperr.KindOf(err))
	}
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	serialized, expiresAt, err := a.Issue(ctx, "device-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if parts := strings.Split(serialized, "."); len(parts) != 3 {
		t.Fatalf("serialized token has %d parts, want 3", len(parts))
	}

	claims, err := a.Validate(ctx, serialized, "device-1")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !claims.ExpiresAt.Equal(expiresAt) {
		t.Errorf("claims expiry = %v, want %v", claims.ExpiresAt, expiresAt)
	}

	// La validation ne consomme pas : une seconde validation passe aussi
	if _, err := a.Validate(ctx, serialized, "device-1"); err != nil {
		t.Errorf("second Validate: %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	serialized, expiresAt, err := a.Issue(ctx, "device-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Encore valide mais dans la marge anti-dérive : refusé aussi
	a.now = func() time.Time { return expiresAt.Add(-500 * time.Millisecond) }
	if _, err := a.Validate(ctx, serialized, "device-1"); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("within skew buffer: kind = %v, want KindAuth", apperr.KindOf(err))
	}

	a.now = func() time.Time { return expiresAt.Add(time.Second) }
	if _, err := a.Validate(ctx, serialized, "device-1"); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("after expiry: kind = %v, want KindAuth", apperr.KindOf(err))
	}
}

func TestValidate_Tampered(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	serialized, _, err := a.Issue(ctx, "device-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parts := strings.Split(serialized, ".")

	flip := func(s string) string {
		c := byte('a')
		if s[0] == 'a' {
			c = 'b'
		}
		return string(c) + s[1:]
	}

	cases := map[string]string{
		"tokenId":   flip(parts[0]) + "." + parts[1] + "." + parts[2],
		"expiresAt": parts[0] + ".9" + parts[1] + "." + parts[2],
		"signature": parts[0] + "." + parts[1] + "." + flip(parts[2]),
	}
	for name, tampered := range cases {
		if _, err := a.Validate(ctx, tampered, "device-1"); apperr.KindOf(err) != apperr.KindAuth {
			t.Errorf("tampered %s: kind = %v, want KindAuth", name, apperr.KindOf(err))
		}
	}
}

func TestValidate_Malformed(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	for _, tok := range []string{"", "abc", "a.b", "a.b.c.d", "a.notanumber.c", "..", "a..c"} {
		if _, err := a.Validate(ctx, tok, "device-1"); apperr.KindOf(err) != apperr.KindAuth {
			t.Errorf("token %q: kind = %v, want KindAuth", tok, apperr.KindOf(err))
		}
	}
}

func TestValidate_DeviceBinding(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	serialized, _, err := a.Issue(ctx, "device-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := a.Validate(ctx, serialized, "device-2"); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("other device: kind = %v, want KindAuth", apperr.KindOf(err))
	}
}

func TestValidate_SingleUse(t *testing.T) {
	a, _ := newTestAuthority(t)
	ctx := context.Background()

	serialized, _, err := a.Issue(ctx, "device-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := a.Validate(ctx, serialized, "device-1")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if err := a.Consume(ctx, claims.TokenID); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	if _, err := a.Validate(ctx, serialized, "device-1"); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("consumed token: kind = %v, want KindAuth", apperr.KindOf(err))
	}
}

func TestValidate_PurgesStaleStoredRecord(t *testing.T) {
	a, store := newTestAuthority(t)
	ctx := context.Background()

	serialized, _, err := a.Issue(ctx, "device-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	tokenID := strings.Split(serialized, ".")[0]

	// Enregistrement serveur périmé alors que le jeton signé parait valide
	store.mu.Lock()
	tok := store.toks[tokenID]
	tok.ExpiresAt = time.Now().Add(-time.Minute)
	store.toks[tokenID] = tok
	store.mu.Unlock()

	if _, err := a.Validate(ctx, serialized, "device-1"); apperr.KindOf(err) != apperr.KindAuth {
		t.Errorf("stale record: kind = %v, want KindAuth", apperr.KindOf(err))
	}
	if rec, _ := store.Get(ctx, tokenID); rec != nil {
		t.Error("stale record should have been deleted during validation")
	}
}
