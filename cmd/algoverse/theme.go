package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintln(c.out, a.Tracker().Theme())
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between the light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintln(c.out, a.Tracker().ToggleTheme(cmd.Context()))
			return nil
		},
	})
	return cmd
}
