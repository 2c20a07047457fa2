package main

import (
	"fmt"
	"strconv"
	"strings"

	"algoverse/internal/catalog"
	"algoverse/internal/progress"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
)

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress per pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ov := a.Snapshot().Overview
			fmt.Fprintln(c.out, statusTable(ov))
			fmt.Fprintf(c.out, "%d / %d solved (%d%%)\n", ov.Completed, ov.Total, progress.Percent(ov.Completed, ov.Total))
			return nil
		},
	}
}

func statusTable(ov progress.Overview) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Pattern", "Solved", "Total", "Progress")
	for _, p := range ov.Patterns {
		t.Row(p.Name, strconv.Itoa(p.Completed), strconv.Itoa(p.Total), strconv.Itoa(p.Percent)+"%")
	}
	return t.String()
}

func (c *cli) newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <problem-id>",
		Short: "Toggle whether a problem is solved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			id := parseID(args[0])
			done := a.Tracker().ToggleComplete(cmd.Context(), id)
			label := describe(a.Catalog(), id)
			if done {
				fmt.Fprintf(c.out, "Solved %s\n", label)
			} else {
				fmt.Fprintf(c.out, "Unsolved %s\n", label)
			}
			return nil
		},
	}
}

func parseID(raw string) catalog.ProblemID {
	return catalog.ProblemID(strings.TrimSpace(raw))
}

// describe renders "id title" for known problems and the bare id otherwise.
func describe(c *catalog.Catalog, id catalog.ProblemID) string {
	if p, ok := c.Lookup(id); ok {
		return fmt.Sprintf("%s %s", id, p.Title)
	}
	return id.String()
}
