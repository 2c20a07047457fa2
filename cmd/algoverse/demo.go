package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"algoverse/internal/app"
	"algoverse/internal/devtools"
	"algoverse/internal/kv"

	"github.com/spf13/cobra"
)

func (c *cli) newDemoCmd() *cobra.Command {
	var list bool
	demo := devtools.NewManager()
	cmd := &cobra.Command{
		Use:    "demo [scenario]",
		Short:  "Open the tracker in a seeded in-memory state",
		Hidden: true,
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range demo.Names() {
					fmt.Fprintln(c.out, name)
				}
				return nil
			}
			name := "patterns"
			if len(args) == 1 {
				name = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := c.cfg
			cfg.Backend = kv.BackendMemory
			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			demo.Apply(ctx, a.Tracker(), demo.Resolve(name))
			return a.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print the scenario names and exit")
	return cmd
}
