// Package telemetry builds the structured logger shared by the app. Output is
// one JSON object per line in a file; with no path configured logs are dropped,
// since stdout belongs to the TUI.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Logger struct {
	*log.Logger
	w       io.WriteCloser
	session string
}

// New opens path for appending and returns a JSON logger at level. Every line
// carries the session id so separate runs can be told apart in one file.
func New(path, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	var w io.WriteCloser = nopCloser{Writer: io.Discard}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}
	session := uuid.NewString()
	l := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Formatter:       log.JSONFormatter,
	}).With("session", session)
	return &Logger{Logger: l, w: w, session: session}, nil
}

// Discard is a logger that writes nothing.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard), w: nopCloser{Writer: io.Discard}}
}

func (l *Logger) Session() string { return l.session }

func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
