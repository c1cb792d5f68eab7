package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DataDir != "data" || cfg.General.TopModels != 20 {
		t.Errorf("General = %+v", cfg.General)
	}
	if cfg.Scrape.BaseURL != "https://openrouter.ai" {
		t.Errorf("BaseURL = %q", cfg.Scrape.BaseURL)
	}
	if cfg.Pricing.MatchThreshold != 0.7 {
		t.Errorf("MatchThreshold = %v", cfg.Pricing.MatchThreshold)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.TopModels = 50
	cfg.Scrape.RequestDelaySecs = 3
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.TopModels != 50 {
		t.Errorf("TopModels = %d, want 50", got.General.TopModels)
	}
	if got.Scrape.RequestDelaySecs != 3 {
		t.Errorf("RequestDelaySecs = %v, want 3", got.Scrape.RequestDelaySecs)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "orstats")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	partial := "[general]\ntop_models = 5\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.TopModels != 5 {
		t.Errorf("TopModels = %d, want 5 from file", cfg.General.TopModels)
	}
	// Unset sections keep their defaults.
	if cfg.Scrape.BaseURL != "https://openrouter.ai" {
		t.Errorf("BaseURL = %q, want default preserved", cfg.Scrape.BaseURL)
	}
}

func TestLoad_MalformedFileReportsError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "orstats")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	broken := "[general\ntop_models = not a number\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(broken), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load: want error for malformed file")
	}
	// The returned config still carries usable defaults so callers can
	// warn and continue.
	if cfg.General.TopModels != 20 {
		t.Errorf("TopModels = %d, want default 20", cfg.General.TopModels)
	}
}
