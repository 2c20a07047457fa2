package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"algoverse/internal/catalog"
	"algoverse/internal/kv"
	"algoverse/internal/state"
	"algoverse/internal/tracker"

	"github.com/charmbracelet/log"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func testConfig(t *testing.T, backend string) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Backend = backend
	cfg.DataDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return cfg
}

func newTestApp(t *testing.T, cfg Config, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	a, err := New(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Backend != kv.BackendSQLite || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidateNormalizesAndRejects(t *testing.T) {
	cfg := Config{Backend: " FILE ", LogLevel: "DEBUG", DataDir: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Backend != kv.BackendFile || cfg.LogLevel != "debug" {
		t.Fatalf("expected normalized values, got %+v", cfg)
	}

	bad := []Config{
		{Backend: "redis", DataDir: t.TempDir()},
		{LogLevel: "loud", DataDir: t.TempDir()},
		{QuotaBytes: -1, DataDir: t.TempDir()},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}

func TestValidateExpandsHomeAndFillsDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	cfg := Config{LogPath: "~/algoverse.log"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("expected ~ expansion, got %q", cfg.LogPath)
	}
	if cfg.DataDir == "" || !strings.Contains(cfg.DataDir, "algoverse") {
		t.Fatalf("expected default data dir, got %q", cfg.DataDir)
	}
}

func TestLoadEnvOverridesConfig(t *testing.T) {
	t.Setenv("ALGOVERSE_BACKEND", "memory")
	t.Setenv("ALGOVERSE_QUOTA_BYTES", "1024")
	t.Setenv("ALGOVERSE_ASCII", "true")
	t.Setenv("ALGOVERSE_DATASET", "/tmp/problems.yaml")

	cfg := DefaultConfig()
	if err := cfg.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Backend != "memory" || cfg.QuotaBytes != 1024 || !cfg.ASCIIOnly || cfg.DatasetPath != "/tmp/problems.yaml" {
		t.Fatalf("unexpected config from env: %+v", cfg)
	}
}

func TestLoadEnvRejectsBadNumber(t *testing.T) {
	t.Setenv("ALGOVERSE_QUOTA_BYTES", "lots")
	cfg := DefaultConfig()
	if err := cfg.LoadEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNewLoadsBuiltinCatalog(t *testing.T) {
	a := newTestApp(t, testConfig(t, kv.BackendMemory))
	if len(a.Catalog().Patterns()) == 0 || a.Catalog().Total() == 0 {
		t.Fatalf("expected builtin dataset")
	}
	snap := a.Snapshot()
	if snap.Page != tracker.PageHome || snap.Theme != state.ThemeLight {
		t.Fatalf("unexpected initial snapshot: page=%q theme=%q", snap.Page, snap.Theme)
	}
}

func TestNewFailsOnMissingDataset(t *testing.T) {
	cfg := testConfig(t, kv.BackendMemory)
	cfg.DatasetPath = filepath.Join(t.TempDir(), "missing.json")
	_, err := New(context.Background(), cfg, WithLogger(log.New(io.Discard)))
	if err == nil || !strings.Contains(err.Error(), "load dataset") {
		t.Fatalf("expected dataset error, got %v", err)
	}
}

func TestNewUsesDatasetOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.yaml")
	body := "patterns: [Arrays]\nproblems:\n  - problem_id: 1\n    problem_title: Two Sum\n    problem_link: https://leetcode.com/problems/two-sum/\n    platform: LeetCode\n    pattern_index: 0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t, kv.BackendMemory)
	cfg.DatasetPath = path

	a := newTestApp(t, cfg)
	if a.Catalog().Total() != 1 {
		t.Fatalf("expected override dataset, got %d problems", a.Catalog().Total())
	}
}

func TestControllerMutationsPersistAcrossRestart(t *testing.T) {
	cfg := testConfig(t, kv.BackendFile)

	a, err := New(context.Background(), cfg, WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.OnToggleComplete("1")
	a.OnCreateSet("Favorites")
	a.OnOpenSaveDialog("1")
	a.OnToggleInSaveDialog("Favorites")
	a.OnCloseSaveDialog()
	a.OnToggleTheme()
	a.OnNavigate(tracker.PageSaved)
	a.Close()

	b := newTestApp(t, cfg)
	snap := b.Snapshot()
	if snap.Overview.Completed != 1 {
		t.Fatalf("expected completion to survive restart, got %d", snap.Overview.Completed)
	}
	if snap.Theme != state.ThemeDark {
		t.Fatalf("expected dark theme after restart")
	}
	if !b.Tracker().ProblemSets().Contains("Favorites", "1") {
		t.Fatalf("expected saved problem after restart")
	}
	if snap.Page != tracker.PageHome {
		t.Fatalf("navigation is not persisted, got %q", snap.Page)
	}
}

func TestNewRecoversFromCorruptFileBackend(t *testing.T) {
	cfg := testConfig(t, kv.BackendFile)
	path := filepath.Join(cfg.DataDir, "state.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, cfg)
	snap := a.Snapshot()
	if snap.Overview.Completed != 0 || len(snap.SetNames) != 0 || snap.Theme != state.ThemeLight {
		t.Fatalf("expected defaults after corrupt state, got %+v", snap)
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Fatalf("expected corrupt state kept aside: %v", err)
	}
	if !a.OnCreateSet("Fresh") {
		t.Fatalf("expected writes to work after recovery")
	}
}

func TestControllerDeleteFlow(t *testing.T) {
	a := newTestApp(t, testConfig(t, kv.BackendMemory))
	a.OnCreateSet("A")
	a.OnRequestDeleteSet("A")
	a.OnCancelDeleteSet()
	if len(a.Snapshot().SetNames) != 1 {
		t.Fatalf("cancel must keep the set")
	}
	a.OnRequestDeleteSet("A")
	a.OnConfirmDeleteSet()
	if len(a.Snapshot().SetNames) != 0 {
		t.Fatalf("confirm must delete the set")
	}

	a.OnCreateSet("B")
	a.OnOpenSaveDialog("1")
	a.OnToggleInSaveDialog("B")
	a.OnRemoveFromSet("B", catalog.ProblemID("1"))
	if a.Tracker().ProblemSets().Contains("B", "1") {
		t.Fatalf("expected problem removed")
	}
}

func TestOnCopyLinkUsesClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	a := newTestApp(t, testConfig(t, kv.BackendMemory), WithClipboard(clip))
	if err := a.OnCopyLink("https://example.com"); err != nil {
		t.Fatalf("OnCopyLink: %v", err)
	}
	if clip.text != "https://example.com" {
		t.Fatalf("unexpected clipboard text %q", clip.text)
	}

	clip.err = errors.New("no display")
	if err := a.OnCopyLink("x"); err == nil {
		t.Fatalf("expected clipboard error to surface")
	}
}

func TestQuotaRejectsOversizedWrites(t *testing.T) {
	cfg := testConfig(t, kv.BackendSQLite)
	cfg.QuotaBytes = 64
	a, err := New(context.Background(), cfg, WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a.OnCreateSet(strings.Repeat("x", 100))
	a.Close()

	b := newTestApp(t, cfg)
	if len(b.Snapshot().SetNames) != 0 {
		t.Fatalf("expected oversized write to be dropped by the quota")
	}
}
