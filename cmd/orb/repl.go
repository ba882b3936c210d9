package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/state"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Ask questions interactively against an in-process oracle",
	Long: `Reads one question per line and prints the reading.

  :tone <filter>   switch filter (all, positive, tentative, negative)
  :tones           describe every filter
  :history         show the session history
  quit | exit      leave`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, _ []string) error {
	o, store, err := newOracle(cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "The orb is listening.")
	fmt.Fprintf(out, "  Session: %s | Store: %s\n", sessionID, cfg.Store.DSN)
	fmt.Fprintln(out, "Type a question (or 'quit' to exit):")

	tone := catalog.FilterAll
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprintf(out, "[%s]> ", tone)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		case line == ":tones":
			printGuides(out)
			continue
		case line == ":tone" || strings.HasPrefix(line, ":tone "):
			f, err := catalog.ParseFilter(strings.TrimSpace(strings.TrimPrefix(line, ":tone")))
			if err != nil {
				fmt.Fprintf(out, "  %v\n", err)
				continue
			}
			tone = f
			if g, ok := catalog.Guide(f); ok {
				fmt.Fprintf(out, "  %s: %s\n", g.Label, g.Helper)
			}
			continue
		case line == ":history":
			snap, err := o.State(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			printHistoryTable(out, snap, historyRows(snap.State))
			continue
		}

		res, err := o.Ask(cmd.Context(), sessionID, gate.AskInput{Question: line, Tone: string(tone)})
		var verr *gate.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "  %s\n", verr.Message)
			continue
		}
		if err != nil {
			return err
		}
		printReading(out, res.Reading)
		fmt.Fprintf(out, "  [%d/%d in history]\n\n", len(res.State.History), state.HistoryLimit)
	}
	return scanner.Err()
}
