package config_test

import (
	"testing"
	"time"

	"github.com/mcpgate/mcpgate/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("got addr %q, want :8080", cfg.Addr)
	}
	if cfg.SSEPath != "/api/sse" || cfg.MessagePath != "/api/messages" {
		t.Errorf("got paths %q and %q, want /api/sse and /api/messages", cfg.SSEPath, cfg.MessagePath)
	}
	if cfg.PingInterval != 15*time.Second {
		t.Errorf("got ping interval %s, want 15s", cfg.PingInterval)
	}
	if cfg.ExecutionCeiling != 60*time.Second {
		t.Errorf("got execution ceiling %s, want 60s", cfg.ExecutionCeiling)
	}
	if cfg.ShutdownMargin != 5*time.Second {
		t.Errorf("got shutdown margin %s, want 5s", cfg.ShutdownMargin)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MCPGATE_ADDR", ":9999")
	t.Setenv("MCPGATE_SERVICE_NAME", "custom-gateway")
	t.Setenv("MCPGATE_PING_INTERVAL", "3s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("got addr %q, want :9999", cfg.Addr)
	}
	if cfg.ServiceName != "custom-gateway" {
		t.Errorf("got service name %q, want custom-gateway", cfg.ServiceName)
	}
	if cfg.PingInterval != 3*time.Second {
		t.Errorf("got ping interval %s, want 3s", cfg.PingInterval)
	}
}

func TestLoadRejectsBadTimings(t *testing.T) {
	t.Setenv("MCPGATE_SHUTDOWN_MARGIN", "2m")

	if _, err := config.Load(); err == nil {
		t.Error("margin above ceiling accepted, want error")
	}
}

func TestLoadRejectsZeroPingInterval(t *testing.T) {
	t.Setenv("MCPGATE_PING_INTERVAL", "0s")

	if _, err := config.Load(); err == nil {
		t.Error("zero ping interval accepted, want error")
	}
}
