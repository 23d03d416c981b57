package lumen

import (
	"testing"

	"github.com/lumendb/lumen-go/config"
)

// TestNewClient verifies configuration validation at construction
func TestNewClient(t *testing.T) {
	client, err := NewClient(config.New("https://db.example.com", "token"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("NewClient() returned nil client")
	}

	if _, err := NewClient(nil); err == nil {
		t.Error("NewClient(nil) should return error")
	}
	if _, err := NewClient(config.New("not-a-url", "token")); err == nil {
		t.Error("NewClient() with malformed endpoint should return error")
	}
	if _, err := NewClient(config.New("https://db.example.com", "")); err == nil {
		t.Error("NewClient() without token should return error")
	}
}

// TestClientDatabase verifies keyspace selection precedence
func TestClientDatabase(t *testing.T) {
	client, err := NewClient(config.New("https://db.example.com", "token"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if ks := client.Database().Keyspace(); ks != DefaultKeyspace {
		t.Errorf("Keyspace() = %v, want %v", ks, DefaultKeyspace)
	}
	if ks := client.Database("analytics").Keyspace(); ks != "analytics" {
		t.Errorf("Keyspace() = %v, want analytics", ks)
	}

	cfg := config.New("https://db.example.com", "token")
	cfg.Keyspace = "configured"
	client, err = NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if ks := client.Database().Keyspace(); ks != "configured" {
		t.Errorf("Keyspace() = %v, want configured", ks)
	}
}
