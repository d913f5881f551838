package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "resume-tailor")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, key := range []string{"APP_NAME", "APP_ENV", "HTTP_PORT", "JWT_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %q", key, err.Error())
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Redis.Port != "6379" {
		t.Fatalf("expected default redis port, got %q", cfg.Redis.Port)
	}
	if cfg.Feedback.Workers != 2 || cfg.Feedback.QueueSize != 64 {
		t.Fatalf("unexpected feedback defaults: %+v", cfg.Feedback)
	}
	if cfg.Database.ConnectTimeout != 5*time.Second {
		t.Fatalf("unexpected connect timeout: %s", cfg.Database.ConnectTimeout)
	}
	if cfg.AI.EmbeddingModel == "" {
		t.Fatalf("expected default embedding model")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FEEDBACK_WORKERS", "5")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Feedback.Workers != 5 {
		t.Fatalf("expected 5 workers, got %d", cfg.Feedback.Workers)
	}
	if !cfg.Log.JSON {
		t.Fatalf("expected json logging")
	}
	if cfg.AI.Model != "gemini-test" {
		t.Fatalf("unexpected model %q", cfg.AI.Model)
	}
}
