package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"héllo wörld", 7, "héll..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not cut: %q", got)
	}
	if got := padRight("ü", 2); got != "ü " {
		t.Fatalf("padRight counts runes: %q", got)
	}
}

func TestSingleLine(t *testing.T) {
	if got := singleLine("  lunch\n\tat  noon \n"); got != "lunch at noon" {
		t.Fatalf("singleLine = %q", got)
	}
}

func TestFormatStamp(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, "--:--"},
		{"today", time.Date(2024, 5, 10, 9, 5, 0, 0, time.UTC), "09:05"},
		{"this_year", time.Date(2024, 1, 2, 13, 30, 0, 0, time.UTC), "Jan 2 13:30"},
		{"older", time.Date(2022, 12, 31, 23, 0, 0, 0, time.UTC), "2022-12-31"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatStamp(tc.in, now); got != tc.want {
				t.Fatalf("formatStamp = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Minute, "now"},
		{30 * time.Second, "now"},
		{5 * time.Minute, "5m"},
		{3*time.Hour + 59*time.Minute, "3h"},
		{50 * time.Hour, "2d"},
	}
	for _, tc := range cases {
		if got := formatAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("formatAgo(%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
	if got := formatAgo(time.Time{}, now); got != "" {
		t.Fatalf("formatAgo(zero) = %q, want empty", got)
	}
}
