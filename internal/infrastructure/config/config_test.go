package config

import "testing"

func TestLoad_DevelopmentGeneratesSessionSecret(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SessionSecret == "" {
		t.Fatalf("development must fall back to a generated secret, not an empty signing key")
	}

	other, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if other.SessionSecret == cfg.SessionSecret {
		t.Fatalf("generated secrets must be random, got the same value twice")
	}
}

func TestLoad_NonDevelopmentRequiresSessionSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error when SESSION_SECRET is unset outside development")
	}
}

func TestLoad_ExplicitSecretWins(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "configured-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SessionSecret != "configured-secret" {
		t.Fatalf("explicit secret must be kept, got %q", cfg.SessionSecret)
	}
	if cfg.SessionTTL.Hours() != 24 {
		t.Fatalf("unexpected default session ttl: %v", cfg.SessionTTL)
	}
}
