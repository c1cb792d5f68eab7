package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnbean393/orstats/internal/cli"
	"github.com/johnbean393/orstats/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show revenue across all stored snapshots",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	snapshots := store.NewSnapshotStore(flagDataDir)
	history, skipped, err := snapshots.LoadHistory()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Printf("\n  No snapshots found in %s. Run `orstats collect` first.\n", flagDataDir)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SNAPSHOT HISTORY  %d weeks", len(history))))
	fmt.Println()

	rows := make([][]string, 0, len(history))
	var prevRevenue float64
	for i, snap := range history {
		change := "-"
		if i > 0 && prevRevenue > 0 {
			change = fmt.Sprintf("%+.1f%%", (snap.TotalRevenue-prevRevenue)/prevRevenue*100)
		}
		prevRevenue = snap.TotalRevenue

		top := "-"
		if len(snap.Models) > 0 {
			top = snap.Models[0].Name
		}

		rows = append(rows, []string{
			snap.Date,
			cli.FormatDollars(snap.TotalRevenue),
			change,
			cli.FormatTokens(snap.TotalTokens),
			fmt.Sprintf("%d", snap.TotalModels),
			fmt.Sprintf("%d/%d", snap.PaidModels, snap.FreeModels),
			top,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week Ending", "Revenue", "Change", "Tokens", "Models", "Paid/Free", "Top Model"},
		Rows:    rows,
	}))

	if skipped > 0 {
		fmt.Printf("\n  (%d unreadable snapshots skipped)\n", skipped)
	}

	return nil
}
