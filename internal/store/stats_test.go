package store

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{time.Hour, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{30 * time.Hour, "Yesterday"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		if got := relativeTime(now.Add(-tt.elapsed), now); got != tt.want {
			t.Errorf("relativeTime(-%v) = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
}
