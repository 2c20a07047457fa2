package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"algoverse/internal/app"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// cli carries the parsed configuration and the process streams so commands
// can be built fresh for every test.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	flags app.Config
	cfg   app.Config
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "algoverse",
		Short: "Track algorithm practice by pattern",
		Long: `AlgoVerse tracks algorithm practice problems grouped by pattern.

Run without arguments to open the interactive tracker, or use the
subcommands to script the same changes from a shell.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
		RunE:              c.runTUI,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.Backend, "backend", "", "storage backend: sqlite, file or memory")
	pf.StringVar(&c.flags.DataDir, "data-dir", "", "directory holding persisted state")
	pf.StringVar(&c.flags.DatasetPath, "dataset", "", "JSON or YAML problem dataset replacing the built-in one")
	pf.StringVar(&c.flags.LogPath, "log-file", "", "append JSON logs to this file")
	pf.StringVar(&c.flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.Int64Var(&c.flags.QuotaBytes, "quota", 0, "maximum stored bytes, 0 disables the cap")
	pf.BoolVar(&c.flags.ASCIIOnly, "ascii", false, "draw with ASCII characters only")
	pf.BoolVar(&c.flags.NoMotion, "no-motion", false, "disable dialog animation")

	root.AddCommand(
		c.newStatusCmd(),
		c.newDoneCmd(),
		c.newSetsCmd(),
		c.newThemeCmd(),
		c.newManCmd(),
		c.newDemoCmd(),
	)
	return root
}

// loadConfig layers defaults, ALGOVERSE_* variables and explicitly set flags.
func (c *cli) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg := app.DefaultConfig()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("backend") {
		cfg.Backend = c.flags.Backend
	}
	if fs.Changed("data-dir") {
		cfg.DataDir = c.flags.DataDir
	}
	if fs.Changed("dataset") {
		cfg.DatasetPath = c.flags.DatasetPath
	}
	if fs.Changed("log-file") {
		cfg.LogPath = c.flags.LogPath
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = c.flags.LogLevel
	}
	if fs.Changed("quota") {
		cfg.QuotaBytes = c.flags.QuotaBytes
	}
	if fs.Changed("ascii") {
		cfg.ASCIIOnly = c.flags.ASCIIOnly
	}
	if fs.Changed("no-motion") {
		cfg.NoMotion = c.flags.NoMotion
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

// openApp builds the app for a one-shot subcommand. Without a log file the
// logger writes warnings to stderr as text.
func (c *cli) openApp(cmd *cobra.Command) (*app.App, error) {
	var opts []app.Option
	if c.cfg.LogPath == "" {
		opts = append(opts, app.WithLogger(log.NewWithOptions(c.errOut, log.Options{
			Level:  log.WarnLevel,
			Prefix: "algoverse",
		})))
	}
	return app.New(cmd.Context(), c.cfg, opts...)
}
