package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/magic-orb/internal/replay"
)

var fixturePath string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a fixture and verify every selection",
	Example: `  orb replay --fixture internal/replay/testdata/golden.json`,
	Args:    cobra.NoArgs,
	RunE:    runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&fixturePath, "fixture", "", "path to replay fixture JSON")
	_ = replayCmd.MarkFlagRequired("fixture")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		return err
	}

	// Fixtures always replay into a fresh in-memory session.
	o, store, err := newOracle(":memory:")
	if err != nil {
		return err
	}
	defer store.Close()

	results, summary, err := replay.Run(cmd.Context(), o, f.SessionID, f.Interactions)
	if err != nil {
		return err
	}
	mismatches := f.Check(results, summary)

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"results":    results,
			"summary":    summary,
			"mismatches": mismatches,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-6s  %-8s  %-16s  %s\n", "Turn", "Action", "Response", "Reason")
	for _, r := range results {
		fmt.Fprintf(w, "%-6s  %-8s  %-16s  %s\n", r.TurnID, r.Action, r.ResponseID, r.Reason)
	}
	fmt.Fprintf(w, "\n%d turns: %d applied, %d rejected, history %d\n",
		summary.TotalTurns, summary.Applied, summary.Rejected, summary.HistoryLen)

	if len(mismatches) > 0 {
		for _, m := range mismatches {
			fmt.Fprintf(w, "MISMATCH %s\n", m)
		}
		return fmt.Errorf("%d mismatches against %s", len(mismatches), fixturePath)
	}
	return nil
}
