package app

import (
	"context"
	"fmt"
	"os"

	"algoverse/internal/catalog"
	"algoverse/internal/kv"
	"algoverse/internal/state"
	"algoverse/internal/telemetry"
	"algoverse/internal/tracker"
	"algoverse/internal/ui"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
)

// App wires configuration, storage, the catalog and the tracker, and adapts
// the tracker to the UI controller.
type App struct {
	cfg Config

	logger    *log.Logger
	telemetry *telemetry.Logger
	store     kv.Store
	loader    CatalogLoader
	clipboard Clipboard
	tracker   *tracker.Tracker
	view      *ui.Root
}

type Option func(*App)

// WithLogger replaces the file logger built from Config.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l }
}

func WithClipboard(c Clipboard) Option {
	return func(a *App) { a.clipboard = c }
}

func WithCatalogLoader(l CatalogLoader) Option {
	return func(a *App) { a.loader = l }
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// New expects a validated Config.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:       cfg,
		loader:    catalog.NewLoader(),
		clipboard: systemClipboard{},
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		tl, err := telemetry.New(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		a.telemetry = tl
		a.logger = tl.Logger
	}

	if cfg.Backend != kv.BackendMemory {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			a.closeLog()
			return nil, err
		}
	}
	store, err := kv.Open(ctx, kv.Options{
		Backend:    cfg.Backend,
		Dir:        cfg.DataDir,
		QuotaBytes: cfg.QuotaBytes,
		Logger:     a.logger,
	})
	if err != nil {
		a.closeLog()
		return nil, err
	}
	a.store = store

	cat, err := a.loadCatalog(ctx)
	if err != nil {
		_ = store.Close()
		a.closeLog()
		return nil, err
	}

	a.tracker = tracker.New(ctx, state.New(store, a.logger), cat, a.logger)
	a.logger.Info("app.ready",
		"backend", cfg.Backend,
		"data_dir", cfg.DataDir,
		"patterns", len(cat.Patterns()),
		"problems", cat.Total(),
	)
	return a, nil
}

func (a *App) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if a.cfg.DatasetPath == "" {
		return a.loader.Builtin(ctx)
	}
	cat, err := a.loader.Load(ctx, a.cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", a.cfg.DatasetPath, err)
	}
	return cat, nil
}

func (a *App) Tracker() *tracker.Tracker { return a.tracker }

func (a *App) Catalog() *catalog.Catalog { return a.tracker.Catalog() }

// Run blocks in the TUI until the user quits.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", "session", a.session())
	a.view = ui.New(ui.Options{
		ASCIIOnly: a.cfg.ASCIIOnly,
		NoMotion:  a.cfg.NoMotion,
		Logger:    a.logger,
	})
	a.view.SetController(a)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.view.Stop()
		case <-done:
		}
	}()

	err := a.view.Run()
	a.logger.Info("app.stop", "err", err)
	return err
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("app.store_close_failed", "err", err)
		}
	}
	a.closeLog()
}

func (a *App) closeLog() {
	if a.telemetry != nil {
		_ = a.telemetry.Close()
	}
}

func (a *App) session() string {
	if a.telemetry == nil {
		return ""
	}
	return a.telemetry.Session()
}

func (a *App) Snapshot() tracker.Snapshot { return a.tracker.Snapshot() }

func (a *App) OnNavigate(page tracker.Page) {
	a.tracker.Navigate(page)
}

func (a *App) OnToggleComplete(id catalog.ProblemID) {
	a.tracker.ToggleComplete(context.Background(), id)
}

func (a *App) OnCreateSet(name string) bool {
	return a.tracker.CreateSet(context.Background(), name)
}

func (a *App) OnRequestDeleteSet(name string) {
	a.tracker.RequestDeleteSet(name)
}

func (a *App) OnConfirmDeleteSet() {
	a.tracker.ConfirmDeleteSet(context.Background())
}

func (a *App) OnCancelDeleteSet() {
	a.tracker.CancelDeleteSet()
}

func (a *App) OnRemoveFromSet(name string, id catalog.ProblemID) {
	a.tracker.RemoveProblemFromSet(context.Background(), name, id)
}

func (a *App) OnOpenSaveDialog(id catalog.ProblemID) {
	a.tracker.OpenSaveDialog(id)
}

func (a *App) OnCloseSaveDialog() {
	a.tracker.CloseSaveDialog()
}

func (a *App) OnToggleInSaveDialog(name string) {
	a.tracker.ToggleInSaveDialog(context.Background(), name)
}

func (a *App) OnToggleTheme() {
	a.tracker.ToggleTheme(context.Background())
}

func (a *App) OnCopyLink(link string) error {
	if err := a.clipboard.WriteAll(link); err != nil {
		a.logger.Debug("app.clipboard_failed", "err", err)
		return err
	}
	return nil
}

var _ ui.Controller = (*App)(nil)
