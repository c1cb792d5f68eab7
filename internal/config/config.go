package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all orstats configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Scrape  ScrapeConfig  `toml:"scrape"`
	Pricing PricingConfig `toml:"pricing"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir   string `toml:"data_dir"`
	TopModels int    `toml:"top_models"`
}

// ScrapeConfig holds fetch settings for the rankings and model pages.
type ScrapeConfig struct {
	BaseURL          string  `toml:"base_url"`
	RequestDelaySecs float64 `toml:"request_delay_secs"`
	TimeoutSecs      int     `toml:"timeout_secs"`
}

// PricingConfig holds price lookup settings.
type PricingConfig struct {
	MatchThreshold float64 `toml:"match_threshold"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataDir:   "data",
			TopModels: 20,
		},
		Scrape: ScrapeConfig{
			BaseURL:          "https://openrouter.ai",
			RequestDelaySecs: 1.5,
			TimeoutSecs:      30,
		},
		Pricing: PricingConfig{
			MatchThreshold: 0.7,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "orstats")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "orstats")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
