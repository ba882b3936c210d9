package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/magic-orb/internal/state"
	"github.com/danielpatrickdp/magic-orb/internal/transport"
)

var listSessions bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show a session's active reading and history",
	Example: `  orb state -s alice
  orb state --list`,
	Args: cobra.NoArgs,
	RunE: runState,
}

func init() {
	stateCmd.Flags().BoolVarP(&listSessions, "list", "l", false, "list sessions instead of showing one")
}

type historyRow struct {
	Position  int    `json:"position"`
	ReadingID string `json:"reading_id"`
	Response  string `json:"response_id"`
	Tone      string `json:"tone"`
	Title     string `json:"title"`
	Question  string `json:"question"`
	Timestamp string `json:"timestamp"`
	Active    bool   `json:"active"`
}

func runState(cmd *cobra.Command, _ []string) error {
	client, err := transport.NewClient(cfg.Server.Addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
	defer cancel()

	if listSessions {
		ids, err := client.Sessions(ctx)
		if err != nil {
			return err
		}
		return printSessions(cmd.OutOrStdout(), ids)
	}

	snap, err := client.State(ctx, sessionID)
	if err != nil {
		return err
	}

	rows := historyRows(snap.State)
	if jsonOut {
		return printJSON(cmd.OutOrStdout(), rows)
	}
	printHistoryTable(cmd.OutOrStdout(), snap, rows)
	return nil
}

func printSessions(w io.Writer, ids []string) error {
	if jsonOut {
		if ids == nil {
			ids = []string{}
		}
		return printJSON(w, ids)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "no sessions yet")
		return nil
	}
	fmt.Fprintf(w, "%d sessions, most recent first:\n", len(ids))
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
	return nil
}

func historyRows(s state.ApplicationState) []historyRow {
	rows := make([]historyRow, len(s.History))
	for i, r := range s.History {
		rows[i] = historyRow{
			Position:  i,
			ReadingID: r.ID,
			Response:  r.Response.ID,
			Tone:      string(r.Response.Tone),
			Title:     r.Response.Title,
			Question:  r.Question,
			Timestamp: state.FormatTimestamp(r.Timestamp),
			Active:    s.Active != nil && s.Active.ID == r.ID,
		}
	}
	return rows
}

func printHistoryTable(w io.Writer, snap state.Snapshot, rows []historyRow) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "session %s: no readings yet\n", snap.SessionID)
		return
	}
	fmt.Fprintf(w, "session %s  version %d  %d/%d readings\n\n", snap.SessionID, snap.Version, len(rows), state.HistoryLimit)
	fmt.Fprintf(w, "%-3s %-1s %-10s %-16s %-32s %s\n", "#", "", "Tone", "Title", "Question", "Time")
	fmt.Fprintf(w, "%-3s+%-1s+%-10s+%-16s+%-32s+%s\n", "---", "-", "----------", "----------------", "--------------------------------", "------------------------------")
	for _, r := range rows {
		mark := ""
		if r.Active {
			mark = "*"
		}
		fmt.Fprintf(w, "%-3d %-1s %-10s %-16s %-32s %s\n", r.Position, mark, r.Tone, r.Title, truncate(r.Question, 32), r.Timestamp)
	}
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
