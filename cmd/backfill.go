package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnbean393/orstats/internal/cli"
	"github.com/johnbean393/orstats/internal/model"
	"github.com/johnbean393/orstats/internal/pipeline"
	"github.com/johnbean393/orstats/internal/scrape"
	"github.com/johnbean393/orstats/internal/store"
)

var flagWeeks int

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Generate historical weekly snapshots from the rankings chart",
	Long: "Rebuild past weekly snapshots from the rankings page's embedded\n" +
		"chart data, one snapshot per complete week. The partial current\n" +
		"week is always excluded.",
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().IntVarP(&flagWeeks, "weeks", "w", 0, "Number of past weeks to backfill (0 = all available)")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	today := todayDate()
	snapshots := store.NewSnapshotStore(flagDataDir)

	progressf("=== Backfill: generating weekly history ===\n")

	book, err := fetchPriceBook(ctx)
	if err != nil {
		return err
	}

	client := newScrapeClient()
	progressf("  Fetching rankings page (current + historical chart)...\n")
	html, err := client.FetchRankingsPage(ctx)
	if err != nil {
		return fmt.Errorf("fetching rankings: %w", err)
	}

	chartHistory, err := scrape.ExtractChartHistory(html)
	if err != nil {
		return err
	}

	complete := pipeline.SelectBackfillWeeks(chartHistory, 0, today)
	target := pipeline.SelectBackfillWeeks(chartHistory, flagWeeks, today)
	if len(target) == 0 {
		return fmt.Errorf("no complete weeks in chart history")
	}
	progressf("  Selected %d target weeks\n", len(target))
	for _, w := range target {
		progressf("    %s: %d named models, %s total\n",
			w.WeekStart, len(w.Models), cli.FormatTokens(w.Total))
	}

	slugs := pipeline.UniqueSlugs(target)
	progressf("  %d unique model slugs across all target weeks\n", len(slugs))

	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	allDaily := make(map[string]model.DailyHistory, len(slugs))
	for i, slug := range slugs {
		progressf("  [%d/%d] %s\n", i+1, len(slugs), slug)

		hist, err := dailyHistory(ctx, client, cache, slug, today)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  warning: %s: %v\n", slug, err)
			continue
		}
		allDaily[slug] = hist
	}

	for i, week := range target {
		weekEnd := pipeline.WeekEnd(week.WeekStart)
		progressf("  Week %d/%d: %s to %s\n", i+1, len(target), week.WeekStart, weekEnd)

		rankings := pipeline.BuildWeekRankings(week, previousWeekModels(complete, target, i), book.DisplayName)

		activities := make(map[string]model.ActivityWindow, len(rankings))
		for _, rm := range rankings {
			activities[rm.Slug] = pipeline.SumWindow(allDaily[rm.Slug], weekEnd, 7, false, today)
		}

		rep := pipeline.Reconcile(weekEnd, rankings, activities, book, warnf)
		if err := snapshots.Save(rep); err != nil {
			return fmt.Errorf("saving snapshot %s: %w", weekEnd, err)
		}
		progressf("    Revenue: $%.2f | Tokens: %s | Models: %d named + Others\n",
			rep.TotalRevenue, cli.FormatTokens(rep.TotalTokens), len(rankings))
	}

	progressf("=== Backfill complete: %d weekly snapshots ===\n", len(target))
	return writeReadme(snapshots)
}

// previousWeekModels finds the comparison week for week-over-week change.
// Inside the target range it is simply the prior target week; for the
// first target week it looks further back into the complete history.
func previousWeekModels(complete, target []model.WeeklyChartEntry, i int) map[string]int64 {
	if i > 0 {
		return target[i-1].Models
	}
	for j, w := range complete {
		if w.WeekStart == target[0].WeekStart && j > 0 {
			return complete[j-1].Models
		}
	}
	return nil
}

// dailyHistory fetches one model's full daily analytics, via the page
// cache when it already holds today's fetch.
func dailyHistory(ctx context.Context, client *scrape.Client, cache *store.Cache, slug, today string) (model.DailyHistory, error) {
	if cache != nil {
		if hist, ok, err := cache.GetDailyHistory(slug, today); err == nil && ok {
			return hist, nil
		}
	}

	page, err := client.FetchModelPage(ctx, slug)
	if err != nil {
		return nil, err
	}

	hist := scrape.ExtractDailyHistory(page)
	if cache != nil && len(hist) > 0 {
		if err := cache.SaveDailyHistory(slug, today, hist); err != nil {
			fmt.Fprintf(os.Stderr, "  warning: caching %s: %v\n", slug, err)
		}
	}
	return hist, nil
}
