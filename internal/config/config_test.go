package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"DB_PATH",
		"SERVER_PORT",
		"LOG_LEVEL",
		"CONTENT_DIR",
		"CHECKLIST_PATH",
		"SENTRY_DSN",
		"ENV",
		"RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST",
		"RATE_LIMIT_CLIENT_TTL",
		"SHUTDOWN_GRACE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != "./data/studylog.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.ServerPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.ContentDir != "./docs" {
		t.Fatalf("expected default content dir, got %q", cfg.ContentDir)
	}
	if cfg.ChecklistPath != "" {
		t.Fatalf("expected checklist path to default empty, got %q", cfg.ChecklistPath)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected default environment, got %q", cfg.Environment)
	}
	if cfg.ShutdownGrace != 10*time.Second {
		t.Fatalf("expected default shutdown grace, got %v", cfg.ShutdownGrace)
	}
	if cfg.RateLimit.RequestsPerSecond != 5.0 {
		t.Fatalf("expected default rate limit rps, got %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.Burst != 10 {
		t.Fatalf("expected default rate limit burst, got %d", cfg.RateLimit.Burst)
	}
	if cfg.RateLimit.ClientTTL != 5*time.Minute {
		t.Fatalf("expected default rate limit TTL, got %v", cfg.RateLimit.ClientTTL)
	}
}

func TestLoadReadsEnvironmentValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "/tmp/custom.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CONTENT_DIR", "/srv/topics")
	t.Setenv("CHECKLIST_PATH", "/srv/topics/README.md")
	t.Setenv("SENTRY_DSN", "https://example@sentry.invalid/1")
	t.Setenv("ENV", "production")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("RATE_LIMIT_CLIENT_TTL", "30s")
	t.Setenv("SHUTDOWN_GRACE", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("expected custom db path, got %q", cfg.DBPath)
	}
	if cfg.ServerPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.ContentDir != "/srv/topics" {
		t.Fatalf("expected custom content dir, got %q", cfg.ContentDir)
	}
	if cfg.ChecklistPath != "/srv/topics/README.md" {
		t.Fatalf("expected custom checklist path, got %q", cfg.ChecklistPath)
	}
	if cfg.SentryDSN != "https://example@sentry.invalid/1" {
		t.Fatalf("expected sentry DSN, got %q", cfg.SentryDSN)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected production environment, got %q", cfg.Environment)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Fatalf("expected rate limit rps 2.5, got %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.Burst != 4 {
		t.Fatalf("expected rate limit burst 4, got %d", cfg.RateLimit.Burst)
	}
	if cfg.RateLimit.ClientTTL != 30*time.Second {
		t.Fatalf("expected rate limit TTL 30s, got %v", cfg.RateLimit.ClientTTL)
	}
	if cfg.ShutdownGrace != 3*time.Second {
		t.Fatalf("expected shutdown grace 3s, got %v", cfg.ShutdownGrace)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port", key: "SERVER_PORT", value: "not-a-port"},
		{name: "rps", key: "RATE_LIMIT_RPS", value: "fast"},
		{name: "burst", key: "RATE_LIMIT_BURST", value: "many"},
		{name: "ttl", key: "RATE_LIMIT_CLIENT_TTL", value: "five minutes"},
		{name: "grace", key: "SHUTDOWN_GRACE", value: "soon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}
