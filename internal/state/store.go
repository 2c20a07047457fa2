package state

import (
	"context"
	"errors"
	"io"
	"strings"

	"algoverse/internal/kv"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
)

const (
	KeyCompleted   = "completedProblems"
	KeyProblemSets = "problemSets"
	KeyTheme       = "theme"
)

// Store persists independent JSON slots over a key/value port. Failures are
// logged and swallowed: loads fall back to the caller's default and failed
// saves leave the caller's in-memory value as the source of truth.
type Store struct {
	kv     kv.Store
	logger *log.Logger
}

func New(store kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{kv: store, logger: logger}
}

// Load decodes the value under key, or returns def when it is absent, empty,
// or cannot be decoded.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error("state.load_failed", "key", key, "err", err)
		}
		return def
	}
	if strings.TrimSpace(raw) == "" {
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("state.load_corrupt", "key", key, "err", err)
		return def
	}
	return out
}

// Save encodes value under key. It reports whether the write reached the
// backend; callers are free to ignore the result.
func Save[T any](ctx context.Context, s *Store, key string, value T) bool {
	b, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("state.encode_failed", "key", key, "err", err)
		return false
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		s.logger.Error("state.save_failed", "key", key, "bytes", len(b), "quota", errors.Is(err, kv.ErrQuotaExceeded), "err", err)
		return false
	}
	return true
}

func (s *Store) LoadCompleted(ctx context.Context) CompletedSet {
	return Load(ctx, s, KeyCompleted, NewCompletedSet())
}

func (s *Store) SaveCompleted(ctx context.Context, set CompletedSet) bool {
	return Save(ctx, s, KeyCompleted, set)
}

func (s *Store) LoadProblemSets(ctx context.Context) ProblemSets {
	return Load(ctx, s, KeyProblemSets, NewProblemSets())
}

func (s *Store) SaveProblemSets(ctx context.Context, sets ProblemSets) bool {
	return Save(ctx, s, KeyProblemSets, sets)
}

// LoadTheme returns the stored theme, or light when none is stored or the
// stored value is not a known theme.
func (s *Store) LoadTheme(ctx context.Context) Theme {
	t := Load(ctx, s, KeyTheme, ThemeLight)
	if !t.Valid() {
		s.logger.Warn("state.unknown_theme", "theme", string(t))
		return ThemeLight
	}
	return t
}

func (s *Store) SaveTheme(ctx context.Context, t Theme) bool {
	return Save(ctx, s, KeyTheme, t)
}
