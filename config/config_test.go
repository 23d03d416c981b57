package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

// TestLoadConfig verifies values and defaults are read from a YAML file
func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
endpoint: https://db.example.com
token: app-token
keyspace: main
timeouts:
  request_ms: 5000
breaker:
  enabled: true
  min_requests: 5
logger:
  level: 5
  format: text
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Endpoint != "https://db.example.com" {
		t.Errorf("Endpoint = %v, want %v", cfg.Endpoint, "https://db.example.com")
	}
	if cfg.Keyspace != "main" {
		t.Errorf("Keyspace = %v, want %v", cfg.Keyspace, "main")
	}
	if cfg.Timeouts.Request != 5*time.Second {
		t.Errorf("Timeouts.Request = %v, want %v", cfg.Timeouts.Request, 5*time.Second)
	}
	// unset values fall back to defaults
	if cfg.Timeouts.GeneralMethod != 30*time.Second {
		t.Errorf("Timeouts.GeneralMethod = %v, want default %v", cfg.Timeouts.GeneralMethod, 30*time.Second)
	}
	if !cfg.Breaker.Enabled {
		t.Error("Breaker.Enabled = false, want true")
	}
	if cfg.Breaker.MinRequests != 5 {
		t.Errorf("Breaker.MinRequests = %v, want 5", cfg.Breaker.MinRequests)
	}
	if cfg.Logger.Level != 5 || cfg.Logger.Format != "text" {
		t.Errorf("Logger = %+v, want level 5 format text", cfg.Logger)
	}
}

// TestLoadConfig_MissingToken verifies validation rejects incomplete config
func TestLoadConfig_MissingToken(t *testing.T) {
	path := writeTempConfig(t, `
endpoint: https://db.example.com
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() without token should return error")
	}
}

// TestValidate_BadEndpoint verifies a non-URL endpoint is rejected
func TestValidate_BadEndpoint(t *testing.T) {
	cfg := New("not a url", "tok")
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with malformed endpoint should return error")
	}
}

// TestNew verifies defaults on a programmatically built config
func TestNew(t *testing.T) {
	cfg := New("https://db.example.com", "tok")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Timeouts == nil || cfg.Breaker == nil || cfg.Logger == nil {
		t.Fatal("New() should populate default sub-configs")
	}
	if cfg.Breaker.Enabled {
		t.Error("Breaker should be disabled by default")
	}
}
