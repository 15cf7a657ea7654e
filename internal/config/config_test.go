package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr ':8080', got %q", cfg.Server.Addr)
	}
	if cfg.Facts.ExecTimeoutMs != 5000 {
		t.Errorf("expected default exec timeout 5000, got %d", cfg.Facts.ExecTimeoutMs)
	}
	if !cfg.Facts.Cache {
		t.Error("expected fact cache enabled by default")
	}
	if cfg.UI.ReadyDelay() != 400*time.Millisecond {
		t.Errorf("expected default ready delay 400ms, got %v", cfg.UI.ReadyDelay())
	}
	if cfg.UI.Tray {
		t.Error("expected tray disabled by default")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("VISIOSSON_ADDR", ":9090")
	t.Setenv("VISIOSSON_FACT_URL", "http://facts.local/generate")
	t.Setenv("VISIOSSON_READY_DELAY_MS", "0")
	t.Setenv("VISIOSSON_TRAY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr ':9090', got %q", cfg.Server.Addr)
	}
	if cfg.Facts.URL != "http://facts.local/generate" {
		t.Errorf("expected fact url from env, got %q", cfg.Facts.URL)
	}
	if cfg.UI.ReadyDelay() != 0 {
		t.Errorf("expected zero ready delay, got %v", cfg.UI.ReadyDelay())
	}
	if !cfg.UI.Tray {
		t.Error("expected tray enabled")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("VISIOSSON_READY_DELAY_MS", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric delay")
	}
}
