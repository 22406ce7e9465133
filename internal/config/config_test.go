package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Server.Host)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Data.ArrivalsCSV != "data/arrivals.csv" {
		t.Errorf("ArrivalsCSV = %q, want data/arrivals.csv", cfg.Data.ArrivalsCSV)
	}
	if cfg.Data.CacheDir != ".cache" {
		t.Errorf("CacheDir = %q, want .cache", cfg.Data.CacheDir)
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Format != "json" {
		t.Errorf("logger defaults = %q/%q, want info/json", cfg.Logger.Level, cfg.Logger.Format)
	}
	if !cfg.Security.EnableRateLimit {
		t.Error("rate limiting should default to enabled")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("ARRIVALS_CSV", "/data/border-post-arrivals.csv")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SECURITY_RATE_LIMIT_ENABLED", "false")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9000 {
		t.Errorf("server = %s:%d, want 0.0.0.0:9000", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Data.ArrivalsCSV != "/data/border-post-arrivals.csv" {
		t.Errorf("ArrivalsCSV = %q", cfg.Data.ArrivalsCSV)
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.Format != "text" {
		t.Errorf("logger = %q/%q, want debug/text", cfg.Logger.Level, cfg.Logger.Format)
	}
	if cfg.Security.EnableRateLimit {
		t.Error("rate limiting should be disabled")
	}
	if len(cfg.Security.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want two entries", cfg.Security.AllowedOrigins)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.toml")
	toml := `
[server]
port = 8888

[data]
arrivals_csv = "custom/arrivals.csv"

[logger]
level = "warn"
`
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DASHBOARD_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Port = %d, want 8888 from file", cfg.Server.Port)
	}
	if cfg.Data.ArrivalsCSV != "custom/arrivals.csv" {
		t.Errorf("ArrivalsCSV = %q, want custom/arrivals.csv", cfg.Data.ArrivalsCSV)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logger.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Server.Host)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 8888\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DASHBOARD_CONFIG", path)
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("DASHBOARD_CONFIG", "/nonexistent/dashboard.toml")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port too high", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero rate limit", "SECURITY_RATE_LIMIT_RPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should error", tt.key, tt.value)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Host: "localhost", Port: 8090}}
	if got := cfg.Address(); got != "localhost:8090" {
		t.Errorf("Address() = %q, want localhost:8090", got)
	}
}
