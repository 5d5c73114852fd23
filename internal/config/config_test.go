package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("AGRILINK_TEST_KEY", "set")
	if got := getEnv("AGRILINK_TEST_KEY", "default"); got != "set" {
		t.Fatalf("getEnv returned %q, want %q", got, "set")
	}
	if got := getEnv("AGRILINK_TEST_MISSING", "default"); got != "default" {
		t.Fatalf("getEnv returned %q, want %q", got, "default")
	}
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("AGRILINK_TEST_TTL", "30m")
	if got := getDurationEnv("AGRILINK_TEST_TTL", time.Minute); got != 30*time.Minute {
		t.Fatalf("getDurationEnv returned %s, want 30m", got)
	}

	t.Setenv("AGRILINK_TEST_TTL_BAD", "not-a-duration")
	if got := getDurationEnv("AGRILINK_TEST_TTL_BAD", time.Minute); got != time.Minute {
		t.Fatalf("getDurationEnv with invalid value returned %s, want fallback 1m", got)
	}

	t.Setenv("AGRILINK_TEST_TTL_NEG", "-5m")
	if got := getDurationEnv("AGRILINK_TEST_TTL_NEG", time.Minute); got != time.Minute {
		t.Fatalf("getDurationEnv with negative value returned %s, want fallback 1m", got)
	}
}
