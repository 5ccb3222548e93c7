package chat

import (
	"fmt"
	"time"
)

// RelativeTime formats the age of t relative to now, e.g. "5 minutes ago".
// Buckets are floor-based: under an hour in minutes, under a day in hours,
// otherwise days. Future timestamps clamp to "0 minutes ago".
func RelativeTime(now, t time.Time) string {
	minutes, hours, days := ageBuckets(now, t)

	switch {
	case minutes < 60:
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	default:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
}

// RelativeTimeShort is the compact variant used on dashboard cards,
// e.g. "5m ago".
func RelativeTimeShort(now, t time.Time) string {
	minutes, hours, days := ageBuckets(now, t)

	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", days)
	}
}

func ageBuckets(now, t time.Time) (minutes, hours, days int) {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}
	minutes = int(diff / time.Minute)
	hours = int(diff / time.Hour)
	days = int(diff / (24 * time.Hour))
	return minutes, hours, days
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
