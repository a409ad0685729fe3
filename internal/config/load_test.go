package config

import (
	"testing"
)

func TestLoadFromEnvironment(t *testing.T) {
	// Not parallel: mutates process environment.
	t.Setenv("PROEVALS_DATABASE_URL", "postgres://localhost:5432/proevals_test")
	t.Setenv("PROEVALS_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PROEVALS_SERVER_PORT", "9090")
	t.Setenv("PROEVALS_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("Server.LogLevel = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.Database.URL != "postgres://localhost:5432/proevals_test" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Auth.TokenLifetimeMinutes != 60 {
		t.Errorf("Auth.TokenLifetimeMinutes default = %d, want 60", cfg.Auth.TokenLifetimeMinutes)
	}
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("PROEVALS_DATABASE_URL", "postgres://localhost:5432/proevals_test")
	t.Setenv("PROEVALS_AUTH_JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for short jwt secret")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("PROEVALS_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PROEVALS_DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for missing database url")
	}
}
