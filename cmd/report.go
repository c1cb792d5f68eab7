package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnbean393/orstats/internal/cli"
	"github.com/johnbean393/orstats/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the latest revenue snapshot",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	snapshots := store.NewSnapshotStore(flagDataDir)
	history, _, err := snapshots.LoadHistory()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Printf("\n  No snapshots found in %s. Run `orstats collect` first.\n", flagDataDir)
		return nil
	}

	snap := history[len(history)-1]

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("OPENROUTER REVENUE  %s", snap.Date)))
	fmt.Println()
	fmt.Printf("  Estimated weekly revenue: %s\n", cli.FormatDollars(snap.TotalRevenue))
	fmt.Printf("  Total tokens tracked:     %s\n", cli.FormatTokens(snap.TotalTokens))
	fmt.Printf("  Models:                   %d (%d paid, %d free)\n",
		snap.TotalModels, snap.PaidModels, snap.FreeModels)
	fmt.Println()

	models := snap.Models
	if flagTop > 0 && len(models) > flagTop {
		models = models[:flagTop]
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		revenue := cli.FormatDollars(m.EstimatedRevenue)
		if m.IsFree {
			revenue = "Free"
		}
		rows = append(rows, []string{
			m.Name,
			cli.FormatTokens(m.TotalTokens),
			cli.FormatTokens(m.CachedTokens),
			fmt.Sprintf("%.0f%%", m.PromptRatio*100),
			fmt.Sprintf("%.0f%%", m.CompletionRatio*100),
			revenue,
			cli.FormatWoW(m.PercentChange),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Tokens", "Cached", "Prompt", "Compl", "Revenue", "WoW"},
		Rows:    rows,
	}))
	fmt.Println()

	// The README is derived output; viewing a report refreshes it.
	return writeReadme(snapshots)
}
