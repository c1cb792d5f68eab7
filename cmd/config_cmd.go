package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnbean393/orstats/internal/config"
	"github.com/johnbean393/orstats/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.General.DataDir)
	fmt.Printf("    Top models:     %d\n", cfg.General.TopModels)
	fmt.Println()

	fmt.Println("  [Scrape]")
	fmt.Printf("    Base URL:      %s\n", cfg.Scrape.BaseURL)
	fmt.Printf("    Request delay: %.1fs\n", cfg.Scrape.RequestDelaySecs)
	fmt.Printf("    Timeout:       %ds\n", cfg.Scrape.TimeoutSecs)
	fmt.Println()

	fmt.Println("  [Pricing]")
	fmt.Printf("    Match threshold: %.2f\n", cfg.Pricing.MatchThreshold)
	fmt.Println()

	fmt.Printf("  Page cache: %s\n", store.CachePath())
	if cache, err := store.Open(store.CachePath()); err == nil {
		defer cache.Close()
		if n, err := cache.TrackedSlugCount(); err == nil {
			fmt.Printf("    Tracked models: %d\n", n)
		}
	}

	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config file already exists at %s", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote defaults to %s\n", config.ConfigPath())
	return nil
}
