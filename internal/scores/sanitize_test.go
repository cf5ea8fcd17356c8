package scores

import (
	"math"
	"testing"
	"time"
)

func TestSanitizePlayerName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trimmed", "  Nova  ", "Nova"},
		{"collapsed whitespace", "Nova\t\t Pilot", "Nova Pilot"},
		{"disallowed stripped", "N@o#v$a!", "Nova"},
		{"underscores and dashes kept", "ace_pilot-9", "ace_pilot-9"},
		{"truncated to 24", "abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqrstuvwx"},
		{"empty falls back", "", DefaultPlayerName},
		{"only symbols falls back", "$$$!!!", DefaultPlayerName},
		{"whitespace only falls back", "   \t ", DefaultPlayerName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizePlayerName(tc.in); got != tc.want {
				t.Errorf("SanitizePlayerName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClampInt64(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		min  int64
		max  int64
		want int64
	}{
		{"floored", 5.9, 0, 100, 5},
		{"below min", -3, 0, 100, 0},
		{"above max", 1e9, 0, 100, 100},
		{"nan clamps to min", math.NaN(), 0, 100, 0},
		{"positive inf clamps to min", math.Inf(1), 0, 100, 0},
		{"negative inf clamps to min", math.Inf(-1), 0, 100, 0},
		{"exact bound", 100, 0, 100, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampInt64(tc.in, tc.min, tc.max); got != tc.want {
				t.Errorf("ClampInt64(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"friday",
			time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to preceding monday",
			time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday midnight is its own week start",
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc input normalized",
			time.Date(2026, 8, 24, 1, 0, 0, 0, time.FixedZone("plus2", 2*3600)),
			time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStart(tc.in); !got.Equal(tc.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
