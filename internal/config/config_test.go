package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "file" {
		t.Fatalf("expected file backend default, got %s", cfg.Storage.Backend)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file written: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.View.Kind = "week"
	cfg.View.CustomDays = 5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Storage.Backend != "sqlite" || got.View.Kind != "week" || got.View.CustomDays != 5 {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestNormalizeRepairsBadValues(t *testing.T) {
	cfg := Config{}
	cfg.Storage.Backend = "carrier-pigeon"
	cfg.View.CustomDays = -2
	cfg.View.CustomHourStart = 30
	cfg.Gesture.MinDurationMinutes = 0
	cfg.Normalize()

	def := Default()
	if cfg.Storage.Backend != def.Storage.Backend {
		t.Fatalf("backend not repaired: %s", cfg.Storage.Backend)
	}
	if cfg.View.CustomDays != def.View.CustomDays {
		t.Fatalf("custom days not repaired: %d", cfg.View.CustomDays)
	}
	if cfg.View.CustomHourStart != def.View.CustomHourStart {
		t.Fatalf("hour start not repaired: %d", cfg.View.CustomHourStart)
	}
	if cfg.Gesture.MinDurationMinutes != def.Gesture.MinDurationMinutes {
		t.Fatalf("minimum duration not repaired: %d", cfg.Gesture.MinDurationMinutes)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n -bad"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
