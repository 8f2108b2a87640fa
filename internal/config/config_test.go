package config

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_PATH", "REDIS_URL", "METRICS_ENABLED",
		"METRICS_HOST", "METRICS_PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.DatabasePath != "./runcoach.db" {
		t.Errorf("Expected default database path './runcoach.db', got %s", cfg.DatabasePath)
	}
	if cfg.RedisURL != "" {
		t.Errorf("Expected caching disabled by default, got %s", cfg.RedisURL)
	}
	if cfg.MetricsEnabled {
		t.Error("Expected metrics disabled by default")
	}
	if cfg.MetricsHost != "localhost" {
		t.Errorf("Expected default metrics host 'localhost', got %s", cfg.MetricsHost)
	}
	if cfg.MetricsPort != 9091 {
		t.Errorf("Expected default metrics port 9091, got %d", cfg.MetricsPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got %s", cfg.LogLevel)
	}
}

func TestLoadFromEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_PATH", "/tmp/coach.db")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("METRICS_HOST", "0.0.0.0")
	t.Setenv("METRICS_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.DatabasePath != "/tmp/coach.db" {
		t.Errorf("Expected database path '/tmp/coach.db', got %s", cfg.DatabasePath)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Expected redis URL from env, got %s", cfg.RedisURL)
	}
	if !cfg.MetricsEnabled {
		t.Error("Expected metrics enabled")
	}
	if cfg.MetricsHost != "0.0.0.0" {
		t.Errorf("Expected metrics host '0.0.0.0', got %s", cfg.MetricsHost)
	}
	if cfg.MetricsPort != 8080 {
		t.Errorf("Expected metrics port 8080, got %d", cfg.MetricsPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got %s", cfg.LogLevel)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("METRICS_PORT", "not-a-port")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()

	if cfg.MetricsPort != 9091 {
		t.Errorf("Expected invalid port to fall back to 9091, got %d", cfg.MetricsPort)
	}
	if cfg.MetricsEnabled {
		t.Error("Expected invalid bool to fall back to false")
	}
}
