package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnbean393/orstats/internal/store"
	"github.com/johnbean393/orstats/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse snapshot history interactively",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	snapshots := store.NewSnapshotStore(flagDataDir)
	history, _, err := snapshots.LoadHistory()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return fmt.Errorf("no snapshots found in %s, run `orstats collect` first", flagDataDir)
	}

	if err := tui.Run(history); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
