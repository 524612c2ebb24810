package cmd

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"negative", -time.Minute, "expired"},
		{"seconds", 30 * time.Second, "< 1 minute"},
		{"one minute", 90 * time.Second, "1 minute"},
		{"minutes", 45 * time.Minute, "45 minutes"},
		{"one hour", time.Hour, "1 hour"},
		{"hours", 5 * time.Hour, "5 hours"},
		{"one day", 24 * time.Hour, "1 day"},
		{"days", 13 * 24 * time.Hour, "13 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.expected {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	t.Run("future expiry", func(t *testing.T) {
		got := formatExpiry(time.Now().Add(2 * time.Hour))
		if !strings.HasPrefix(got, "in ") {
			t.Errorf("expected a forward-looking expiry, got %q", got)
		}
	})

	t.Run("past expiry", func(t *testing.T) {
		got := formatExpiry(time.Now().Add(-2 * time.Hour))
		if !strings.Contains(got, "expired") || !strings.Contains(got, "ago") {
			t.Errorf("expected an expired marker, got %q", got)
		}
	})
}
