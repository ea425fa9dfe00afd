package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.CacheSweepInterval != 1*time.Minute {
		t.Errorf("CacheSweepInterval = %v, want 1m", cfg.CacheSweepInterval)
	}
	if cfg.BalanceTolerance != 1 {
		t.Errorf("BalanceTolerance = %d, want 1", cfg.BalanceTolerance)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("BALANCE_TOLERANCE_CENTS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if cfg.BalanceTolerance != 0 {
		t.Errorf("BalanceTolerance = %d, want 0", cfg.BalanceTolerance)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "not-a-number"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad cache ttl", "CACHE_TTL", "5 minutes"},
		{"bad sweep interval", "CACHE_SWEEP_INTERVAL", "often"},
		{"bad tolerance", "BALANCE_TOLERANCE_CENTS", "one"},
		{"negative tolerance", "BALANCE_TOLERANCE_CENTS", "-1"},
		{"bad read timeout", "READ_TIMEOUT", "fast"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q: expected error, got nil", tt.key, tt.value)
			}
		})
	}
}
