package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SocketAddr != ":8000" || cfg.LogLevel != "info" || cfg.JournalTTL != 24*time.Hour {
		t.Fatalf("Load() = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEED", "42")
	t.Setenv("REDIS_URL", "localhost:6379")
	t.Setenv("JOURNAL_TTL", "30m")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Seed != 42 || cfg.RedisURL != "localhost:6379" || cfg.JournalTTL != 30*time.Minute {
		t.Fatalf("Load() = %+v", cfg)
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("SEED", "not-a-number")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
