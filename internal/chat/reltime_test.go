package chat

import (
	"testing"
	"time"
)

func TestRelativeTimeBuckets(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"one minute", 1 * time.Minute, "1 minute ago"},
		{"under an hour", 59 * time.Minute, "59 minutes ago"},
		{"exactly an hour", 60 * time.Minute, "1 hour ago"},
		{"floor to hours", 90 * time.Minute, "1 hour ago"},
		{"under a day", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"exactly a day", 24 * time.Hour, "1 day ago"},
		{"floor to days", 71 * time.Hour, "2 days ago"},
		{"zero age", 0, "0 minutes ago"},
		{"just now", 30 * time.Second, "0 minutes ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeTime(now, now.Add(-tt.age))
			if got != tt.want {
				t.Errorf("RelativeTime(%v ago) = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

func TestRelativeTimeShortBuckets(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		age  time.Duration
		want string
	}{
		{59 * time.Minute, "59m ago"},
		{60 * time.Minute, "1h ago"},
		{24 * time.Hour, "1d ago"},
		{5 * time.Minute, "5m ago"},
	}

	for _, tt := range tests {
		got := RelativeTimeShort(now, now.Add(-tt.age))
		if got != tt.want {
			t.Errorf("RelativeTimeShort(%v ago) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestRelativeTimeFutureClampsToZero(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * time.Minute)

	if got := RelativeTime(now, future); got != "0 minutes ago" {
		t.Errorf("RelativeTime(future) = %q, want clamp to zero", got)
	}
	if got := RelativeTimeShort(now, future); got != "0m ago" {
		t.Errorf("RelativeTimeShort(future) = %q, want clamp to zero", got)
	}
}
