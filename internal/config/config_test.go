package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Errorf("BackendTimeout = %v, want 10s", cfg.BackendTimeout)
	}
	if !cfg.Features.FraudDetection || !cfg.Features.NewsAnalyzer {
		t.Errorf("features should default to enabled: %+v", cfg.Features)
	}
	if cfg.GoogleEnabled() {
		t.Error("GoogleEnabled() should be false without credentials")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("ENABLE_FRAUD_DETECTION", "false")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("QUIZ_SESSION_TTL", "600")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want 9000", cfg.ServerPort)
	}
	if cfg.Features.FraudDetection {
		t.Error("FraudDetection should be disabled")
	}
	if cfg.BackendTimeout != 3*time.Second {
		t.Errorf("BackendTimeout = %v, want 3s", cfg.BackendTimeout)
	}
	if cfg.QuizSessionTTL != 10*time.Minute {
		t.Errorf("QuizSessionTTL = %v, want 10m", cfg.QuizSessionTTL)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Errorf("RateLimitPerMinute = %d, want fallback 60", cfg.RateLimitPerMinute)
	}
	if !cfg.GoogleEnabled() {
		t.Error("GoogleEnabled() should be true")
	}
}
