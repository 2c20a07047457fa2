package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]SizedStore {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := NewSQLite(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if err := sqlite.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	file, err := NewFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	return map[string]SizedStore{
		"sqlite": sqlite,
		"file":   file,
		"memory": NewMemory(),
	}
}

func TestStoreGetSetRemove(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "theme"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound for missing key, got %v", err)
			}
			if err := s.Set(ctx, "theme", `"dark"`); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, "theme", `"light"`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := s.Get(ctx, "theme")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != `"light"` {
				t.Fatalf("expected overwritten value, got %q", got)
			}
			used, err := s.Usage(ctx)
			if err != nil {
				t.Fatalf("usage: %v", err)
			}
			if used != int64(len("theme")+len(`"light"`)) {
				t.Fatalf("unexpected usage %d", used)
			}
			if err := s.Remove(ctx, "theme"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if _, err := s.Get(ctx, "theme"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after remove, got %v", err)
			}
			if err := s.Remove(ctx, "theme"); err != nil {
				t.Fatalf("removing an absent key should be a no-op: %v", err)
			}
		})
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := s.Set(ctx, "completedProblems", `[1,2]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	ts, err := s.UpdatedAt(ctx, "completedProblems")
	if err != nil || ts.IsZero() {
		t.Fatalf("expected update timestamp, got %v err=%v", ts, err)
	}
	_ = s.Close()

	s, err = NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema twice: %v", err)
	}
	got, err := s.Get(ctx, "completedProblems")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != `[1,2]` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file: %v", err)
	}
	if err := s.Set(ctx, "theme", `"dark"`); err != nil {
		t.Fatalf("set: %v", err)
	}
	s, err = NewFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := s.Get(ctx, "theme")
	if err != nil || got != `"dark"` {
		t.Fatalf("unexpected value %q err=%v", got, err)
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "theme" {
		t.Fatalf("unexpected keys %#v", keys)
	}
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("open corrupt file: %v", err)
	}
	for _, key := range []string{"completedProblems", "problemSets", "theme"} {
		if _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
			t.Fatalf("get %s: expected ErrNotFound, got %v", key, err)
		}
	}
	if s.Recovered() != path+".corrupt" {
		t.Fatalf("unexpected recovered path %q", s.Recovered())
	}
	kept, err := os.ReadFile(path + ".corrupt")
	if err != nil || string(kept) != "{truncated" {
		t.Fatalf("expected corrupt file kept aside, got %q err=%v", kept, err)
	}

	if err := s.Set(ctx, "theme", `"dark"`); err != nil {
		t.Fatalf("set after recovery: %v", err)
	}
	if kept, _ := os.ReadFile(path + ".corrupt"); string(kept) != "{truncated" {
		t.Fatalf("write after recovery clobbered the corrupt copy")
	}
}

func TestOpenFileBackendSurvivesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("[1,2"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(context.Background(), Options{Backend: BackendFile, Dir: dir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), "theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLimitRejectsWritesPastQuota(t *testing.T) {
	ctx := context.Background()
	s := Limit(NewMemory(), 20)
	if err := s.Set(ctx, "k", "0123456789"); err != nil {
		t.Fatalf("set within quota: %v", err)
	}
	// Overwriting the same key only counts the new value.
	if err := s.Set(ctx, "k", "0123456789abcdefg"); err != nil {
		t.Fatalf("overwrite within quota: %v", err)
	}
	err := s.Set(ctx, "other", "0123456789")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	got, _ := s.Get(ctx, "k")
	if got != "0123456789abcdefg" {
		t.Fatalf("rejected write must not change existing data, got %q", got)
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendSQLite, BackendFile, BackendMemory} {
		s, err := Open(ctx, Options{Backend: backend, Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("open %s: %v", backend, err)
		}
		if err := s.Set(ctx, "theme", `"dark"`); err != nil {
			t.Fatalf("%s set: %v", backend, err)
		}
		_ = s.Close()
	}
	if _, err := Open(ctx, Options{Backend: "redis"}); err == nil {
		t.Fatalf("expected unknown backend error")
	}
	s, err := Open(ctx, Options{Backend: BackendMemory, QuotaBytes: 4})
	if err != nil {
		t.Fatalf("open limited: %v", err)
	}
	if err := s.Set(ctx, "theme", `"dark"`); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
}
