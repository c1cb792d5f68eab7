package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnbean393/orstats/internal/cli"
	"github.com/johnbean393/orstats/internal/model"
	"github.com/johnbean393/orstats/internal/pipeline"
	"github.com/johnbean393/orstats/internal/pricing"
	"github.com/johnbean393/orstats/internal/report"
	"github.com/johnbean393/orstats/internal/scrape"
	"github.com/johnbean393/orstats/internal/store"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect the current week's snapshot and regenerate the README",
	RunE:  runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	today := todayDate()
	snapshots := store.NewSnapshotStore(flagDataDir)

	progressf("=== OpenRouter revenue collection: %s ===\n", today)

	// One snapshot per week. If one exists within the last 7 days, only
	// regenerate the README in case the generator changed.
	if existing, ok := snapshots.FindRecent(today, 6); ok {
		progressf("  Snapshot already exists for %s, regenerating README only\n", existing)
		return writeReadme(snapshots)
	}

	book, err := fetchPriceBook(ctx)
	if err != nil {
		return err
	}

	client := newScrapeClient()
	progressf("  Fetching rankings page...\n")
	html, err := client.FetchRankingsPage(ctx)
	if err != nil {
		return fmt.Errorf("fetching rankings: %w", err)
	}

	rankings := scrape.ParseRankings(html)
	if len(rankings) == 0 {
		return fmt.Errorf("no models found on rankings page")
	}
	if flagTop > 0 && len(rankings) > flagTop {
		rankings = rankings[:flagTop]
	}
	progressf("  Found %d ranked models\n", len(rankings))

	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	activities := make(map[string]model.ActivityWindow, len(rankings))
	withActivity := 0
	for i, rm := range rankings {
		progressf("  [%d/%d] %s\n", i+1, len(rankings), rm.Slug)

		activity, err := modelActivity(ctx, client, cache, rm.Slug, today)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  warning: %s: %v\n", rm.Slug, err)
			continue
		}
		activities[rm.Slug] = activity
		if activity.ObservedTokens() > 0 {
			withActivity++
		}
	}
	progressf("  Got activity data for %d/%d models\n", withActivity, len(rankings))

	rep := pipeline.Reconcile(today, rankings, activities, book, warnf)
	progressf("  Total estimated revenue: $%.2f across %s tokens\n",
		rep.TotalRevenue, cli.FormatTokens(rep.TotalTokens))

	if err := snapshots.Save(rep); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	progressf("  Snapshot saved to %s/%s.json\n", flagDataDir, today)

	return writeReadme(snapshots)
}

// modelActivity returns the 7-full-day token breakdown for one model.
// The page cache short-circuits the fetch when the model's daily history
// was already stored today. Pages without embedded analytics fall back
// to the coarse HTML legend.
func modelActivity(ctx context.Context, client *scrape.Client, cache *store.Cache, slug, today string) (model.ActivityWindow, error) {
	if cache != nil {
		if hist, ok, err := cache.GetDailyHistory(slug, today); err == nil && ok {
			end := pipeline.LatestDate(hist)
			return pipeline.SumWindow(hist, end, 7, true, today), nil
		}
	}

	page, err := client.FetchModelPage(ctx, slug)
	if err != nil {
		return model.ActivityWindow{}, err
	}

	hist := scrape.ExtractDailyHistory(page)
	if len(hist) == 0 {
		return scrape.ExtractActivityLegend(page), nil
	}

	if cache != nil {
		if err := cache.SaveDailyHistory(slug, today, hist); err != nil {
			fmt.Fprintf(os.Stderr, "  warning: caching %s: %v\n", slug, err)
		}
	}

	end := pipeline.LatestDate(hist)
	return pipeline.SumWindow(hist, end, 7, true, today), nil
}

// fetchPriceBook loads the pricing feed and builds the lookup index.
func fetchPriceBook(ctx context.Context) (*pricing.Book, error) {
	cfg := loadConfig()

	progressf("  Fetching pricing feed...\n")
	entries, err := pricing.NewClient(cfg.Scrape.BaseURL).FetchEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching pricing: %w", err)
	}

	book := pricing.Build(entries)
	book.MatchThreshold = cfg.Pricing.MatchThreshold
	progressf("  Loaded pricing for %d model entries\n", book.Len())
	return book, nil
}

// writeReadme regenerates the README from the stored snapshot history.
func writeReadme(snapshots *store.SnapshotStore) error {
	history, skipped, err := snapshots.LoadHistory()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "  warning: skipped %d unreadable snapshots\n", skipped)
	}
	if len(history) == 0 {
		return fmt.Errorf("no snapshots in %s", flagDataDir)
	}

	content := report.Generate(history[len(history)-1], history)
	if err := os.WriteFile(flagReadme, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}
	progressf("  README written to %s\n", flagReadme)
	return nil
}

func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
