// Package cmd implements the orstats CLI commands.
package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnbean393/orstats/internal/config"
	"github.com/johnbean393/orstats/internal/scrape"
	"github.com/johnbean393/orstats/internal/store"
)

var (
	flagDataDir string
	flagReadme  string
	flagTop     int
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "orstats",
	Short: "OpenRouter inference revenue estimator",
	Long: "Estimate weekly inference revenue across OpenRouter models from\n" +
		"public rankings, per-model analytics, and the pricing API.",
	RunE: runCollect,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	loadedCfg  config.Config
	cfgLoadErr error
	cfgOnce    sync.Once
)

// loadConfig loads config.toml once per process. A malformed file is
// reported to stderr once and the returned config carries the defaults.
func loadConfig() config.Config {
	cfgOnce.Do(func() {
		loadedCfg, cfgLoadErr = config.Load()
		if cfgLoadErr != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", cfgLoadErr)
		}
	})
	return loadedCfg
}

func init() {
	cfg := loadConfig()

	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", cfg.General.DataDir, "Snapshot directory")
	rootCmd.PersistentFlags().StringVar(&flagReadme, "readme", "README.md", "README output path")
	rootCmd.PersistentFlags().IntVarP(&flagTop, "top", "t", cfg.General.TopModels, "Number of leaderboard models to track")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite page cache, refetch everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// progressf writes progress to stderr unless --quiet is set.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// newScrapeClient builds the page fetch client from config.
func newScrapeClient() *scrape.Client {
	cfg := loadConfig()
	return scrape.NewClient(scrape.ClientConfig{
		BaseURL:      cfg.Scrape.BaseURL,
		Timeout:      time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		RequestDelay: time.Duration(cfg.Scrape.RequestDelaySecs * float64(time.Second)),
	})
}

// openCache opens the page cache, or returns nil when --no-cache is set
// or the cache cannot be opened. A nil cache disables lookups and saves.
func openCache() *store.Cache {
	if flagNoCache {
		return nil
	}
	cache, err := store.Open(store.CachePath())
	if err != nil {
		progressf("  Page cache unavailable, fetching everything\n")
		return nil
	}
	return cache
}

// todayDate returns today's snapshot date in UTC.
func todayDate() string {
	return time.Now().UTC().Format("2006-01-02")
}
