package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Auth("bad token"), http.StatusUnauthorized},
		{Conflict("better run exists"), http.StatusConflict},
		{RateLimit("slow down", time.Now()), http.StatusTooManyRequests},
		{Internal("boom", errors.New("detail")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestUserMessage_HidesInternalDetail(t *testing.T) {
	err := Internal("could not insert score", errors.New("pq: connection refused"))
	if msg := UserMessage(err); msg != "internal server error" {
		t.Errorf("UserMessage = %q, internal detail must not cross the boundary", msg)
	}
	if msg := UserMessage(Auth("run token expired")); msg != "run token expired" {
		t.Errorf("UserMessage = %q, want the typed message", msg)
	}
}

func TestKindOf_UnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("submit: %w", Auth("bad token"))
	if KindOf(err) != KindAuth {
		t.Errorf("KindOf(wrapped) = %v, want KindAuth", KindOf(err))
	}
}

func TestRetryAt(t *testing.T) {
	at := time.Now().Add(30 * time.Second)
	if got := RetryAt(RateLimit("slow down", at)); !got.Equal(at) {
		t.Errorf("RetryAt = %v, want %v", got, at)
	}
	if got := RetryAt(Validation("nope")); !got.IsZero() {
		t.Errorf("RetryAt on non-rate-limit error = %v, want zero", got)
	}
}
