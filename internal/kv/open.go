package kv

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Options struct {
	Backend    string
	Dir        string
	QuotaBytes int64
	// Logger receives recovery warnings; nil discards them.
	Logger *log.Logger
}

// Open builds the configured backend under opts.Dir, wrapped in a quota when
// opts.QuotaBytes is positive.
func Open(ctx context.Context, opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var s SizedStore
	switch opts.Backend {
	case BackendSQLite, "":
		db, err := NewSQLite(filepath.Join(opts.Dir, "state.db"))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		s = db
	case BackendFile:
		f, err := NewFile(filepath.Join(opts.Dir, "state.json"))
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		if aside := f.Recovered(); aside != "" {
			logger.Warn("kv.file_corrupt", "path", f.path, "moved_to", aside)
		}
		s = f
	case BackendMemory:
		s = NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if opts.QuotaBytes > 0 {
		return Limit(s, opts.QuotaBytes), nil
	}
	return s, nil
}
