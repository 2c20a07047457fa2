package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"algoverse/internal/app"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("refusing to delete without confirmation; pass --yes")

func (c *cli) newSetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sets",
		Aliases: []string{"set"},
		Short:   "Manage custom problem sets",
	}
	cmd.AddCommand(
		c.newSetsListCmd(),
		c.newSetsCreateCmd(),
		c.newSetsDeleteCmd(),
		c.newSetsToggleCmd(),
		c.newSetsRemoveCmd(),
	)
	return cmd
}

func (c *cli) newSetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List problem sets and their problems",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			sets := a.Snapshot().Sets
			if len(sets) == 0 {
				fmt.Fprintln(c.out, "No problem sets yet. Create one with: algoverse sets create <name>")
				return nil
			}
			for _, s := range sets {
				fmt.Fprintf(c.out, "%s (%d)\n", s.Name, len(s.Problems))
				for _, p := range s.Problems {
					fmt.Fprintf(c.out, "  %-6s %s\n", p.ID, p.Title)
				}
			}
			return nil
		},
	}
}

func (c *cli) newSetsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty problem set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			name := args[0]
			if strings.TrimSpace(name) == "" {
				return errors.New("set name must not be empty")
			}
			if !a.Tracker().CreateSet(cmd.Context(), name) {
				fmt.Fprintf(c.out, "Set %q already exists\n", name)
				return nil
			}
			fmt.Fprintf(c.out, "Created set %q\n", name)
			return nil
		},
	}
}

func (c *cli) newSetsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a problem set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			name := args[0]
			if err := requireSet(a, name); err != nil {
				return err
			}
			if !yes {
				ok, err := c.confirmDelete(name)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.out, "Cancelled")
					return nil
				}
			}

			t := a.Tracker()
			t.RequestDeleteSet(name)
			if _, ok := t.ConfirmDeleteSet(cmd.Context()); !ok {
				return fmt.Errorf("set %q could not be deleted", name)
			}
			fmt.Fprintf(c.out, "Deleted set %q\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirmDelete asks on the terminal. Without one there is nobody to answer.
func (c *cli) confirmDelete(name string) (bool, error) {
	f, ok := c.in.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return false, errNotConfirmed
	}
	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete problem set %q?", name)).
		Description("This action cannot be undone.").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return confirmed, err
}

func (c *cli) newSetsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <name> <problem-id>",
		Short: "Add a problem to a set, or remove it when already there",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			name, id := args[0], parseID(args[1])
			if err := requireSet(a, name); err != nil {
				return err
			}
			added, _ := a.Tracker().ToggleProblemInSet(cmd.Context(), name, id)
			if added {
				fmt.Fprintf(c.out, "Added %s to %q\n", describe(a.Catalog(), id), name)
			} else {
				fmt.Fprintf(c.out, "Removed %s from %q\n", describe(a.Catalog(), id), name)
			}
			return nil
		},
	}
}

func (c *cli) newSetsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <problem-id>",
		Short: "Remove a problem from a set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			name, id := args[0], parseID(args[1])
			if err := requireSet(a, name); err != nil {
				return err
			}
			if !a.Tracker().RemoveProblemFromSet(cmd.Context(), name, id) {
				fmt.Fprintf(c.out, "%s is not in %q\n", describe(a.Catalog(), id), name)
				return nil
			}
			fmt.Fprintf(c.out, "Removed %s from %q\n", describe(a.Catalog(), id), name)
			return nil
		},
	}
}

func requireSet(a *app.App, name string) error {
	sets := a.Tracker().ProblemSets()
	if sets.Has(name) {
		return nil
	}
	if guess, ok := suggest(name, sets.Names()); ok {
		return fmt.Errorf("unknown set %q (did you mean %q?)", name, guess)
	}
	return fmt.Errorf("unknown set %q", name)
}

// suggest returns the closest name within a small edit distance.
func suggest(name string, names []string) (string, bool) {
	limit := max(2, len(name)/3)
	best, bestDist := "", limit+1
	for _, n := range names {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(n))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, best != ""
}
