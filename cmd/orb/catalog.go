package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/selector"
)

var (
	catalogTone     string
	catalogQuestion string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [response-id]",
	Short: "List the response catalog",
	Example: `  orb catalog --tone tentative
  orb catalog --question "Should I learn Go?"
  orb catalog not-now`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogTone, "tone", "t", "all", "tone filter: all, positive, tentative, negative")
	catalogCmd.Flags().StringVarP(&catalogQuestion, "question", "q", "", "mark the entry this question selects")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(args) == 1 {
		e, ok := cat.Lookup(args[0])
		if !ok {
			return fmt.Errorf("no response with id %q", args[0])
		}
		if jsonOut {
			return printJSON(w, e)
		}
		printEntry(w, e)
		return nil
	}

	filter, err := catalog.ParseFilter(catalogTone)
	if err != nil {
		return err
	}
	entries := cat.Candidates(filter)

	picked := -1
	if catalogQuestion != "" {
		picked, _ = selector.New(cat).Index(catalogQuestion, filter)
	}

	if jsonOut {
		return printJSON(w, entries)
	}

	if g, ok := catalog.Guide(filter); ok {
		fmt.Fprintf(w, "%s: %s\n\n", g.Label, g.Helper)
	}
	for i, e := range entries {
		mark := " "
		if i == picked {
			mark = "*"
		}
		fmt.Fprintf(w, "%s%2d  %-16s %-10s %-8s %s\n", mark, i, e.ID, e.Tone, e.Color, e.Description)
	}
	if picked >= 0 {
		fmt.Fprintf(w, "\n%q (seed %d) selects %d of %d: %s\n",
			selector.Normalize(catalogQuestion), selector.Seed(catalogQuestion), picked, len(entries), entries[picked].ID)
	}
	return nil
}

func printEntry(w io.Writer, e catalog.ResponseEntry) {
	fmt.Fprintf(w, "%s  [%s %s]\n", e.Title, e.Tone, e.Color)
	fmt.Fprintf(w, "  id: %s\n", e.ID)
	fmt.Fprintf(w, "  %s\n", e.Description)
	if g, ok := catalog.Guide(catalog.Filter(e.Tone)); ok {
		fmt.Fprintf(w, "  %s: %s\n", g.Label, g.Heading)
	}
}

func printGuides(w io.Writer) {
	for _, g := range catalog.Guides() {
		fmt.Fprintf(w, "  %-10s %-15s %s\n", g.Filter, g.Label, g.Helper)
	}
}
