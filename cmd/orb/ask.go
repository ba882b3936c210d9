package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/state"
	"github.com/danielpatrickdp/magic-orb/internal/transport"
)

var askTone string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a running orb server a question",
	Example: `  orb ask "Will my idea spark something incredible?"
  orb ask --tone negative -s alice "Should I send that email?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askTone, "tone", "t", "all", "tone filter: all, positive, tentative, negative")
}

func runAsk(cmd *cobra.Command, args []string) error {
	client, err := transport.NewClient(cfg.Server.Addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
	defer cancel()

	res, err := client.Ask(ctx, sessionID, gate.AskInput{
		Question: strings.Join(args, " "),
		Tone:     askTone,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), res.Reading)
	}
	printReading(cmd.OutOrStdout(), res.Reading)
	return nil
}

func printReading(w io.Writer, r state.ReadingRecord) {
	fmt.Fprintf(w, "\n  %s  [%s %s]\n", r.Response.Title, r.Response.Tone, r.Response.Color)
	fmt.Fprintf(w, "  %s\n\n", r.Response.Description)
	fmt.Fprintf(w, "  asked: %q at %s\n", r.Question, state.FormatTimestamp(r.Timestamp))
}
