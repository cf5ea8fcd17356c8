package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// memCounter reproduit la sémantique atomique du store Postgres : chaque appel
// incrémente puis lit. Le limiteur est donc strict, y compris sous
// concurrence, et ces tests supposent cette forme atomique.
type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemCounter() *memCounter {
	return &memCounter{counts: make(map[string]int64)}
}

func (c *memCounter) Incr(_ context.Context, identifier string, windowKey int64, _ time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := fmt.Sprintf("%s|%d", identifier, windowKey)
	c.counts[key]++
	return c.counts[key], nil
}

func TestEnforce_LimitBoundary(t *testing.T) {
	l := New(newMemCounter(), 12, time.Minute)
	base := time.UnixMilli(1_700_000_100_000)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		dec, err := l.Enforce(ctx, "dev:1.2.3.4")
		if err != nil {
			t.Fatalf("Enforce #%d: %v", i, err)
		}
		if !dec.Allowed {
			t.Fatalf("request #%d should be allowed", i)
		}
	}

	dec, err := l.Enforce(ctx, "dev:1.2.3.4")
	if err != nil {
		t.Fatalf("Enforce #13: %v", err)
	}
	if dec.Allowed {
		t.Fatal("request #13 should be rejected")
	}

	windowEnd := time.UnixMilli((base.UnixMilli()/60000 + 1) * 60000)
	if dec.RetryAt.Before(base) || !dec.RetryAt.Equal(windowEnd) {
		t.Errorf("retryAt = %v, want window boundary %v", dec.RetryAt, windowEnd)
	}
}

func TestEnforce_WindowReset(t *testing.T) {
	l := New(newMemCounter(), 1, time.Minute)
	base := time.UnixMilli(1_700_000_100_000)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	if dec, _ := l.Enforce(ctx, "dev:ip"); !dec.Allowed {
		t.Fatal("first request should be allowed")
	}
	dec, _ := l.Enforce(ctx, "dev:ip")
	if dec.Allowed {
		t.Fatal("second request should be rejected")
	}

	// La fenêtre suivante repart de zéro
	l.now = func() time.Time { return dec.RetryAt }
	if dec, _ := l.Enforce(ctx, "dev:ip"); !dec.Allowed {
		t.Error("request after retryAt should be allowed")
	}
}

func TestEnforce_EmptyIdentifierAlwaysPasses(t *testing.T) {
	counter := newMemCounter()
	l := New(counter, 1, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		dec, err := l.Enforce(ctx, "")
		if err != nil || !dec.Allowed {
			t.Fatalf("empty identifier should always pass (allowed=%v, err=%v)", dec.Allowed, err)
		}
	}
	if len(counter.counts) != 0 {
		t.Error("empty identifier should not touch the counter store")
	}
}

func TestEnforce_IdentifiersAreIndependent(t *testing.T) {
	l := New(newMemCounter(), 1, time.Minute)
	ctx := context.Background()

	if dec, _ := l.Enforce(ctx, "a:1"); !dec.Allowed {
		t.Fatal("first identifier should be allowed")
	}
	if dec, _ := l.Enforce(ctx, "b:1"); !dec.Allowed {
		t.Error("a different identifier should not share the counter")
	}
}
