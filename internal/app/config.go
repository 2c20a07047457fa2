package app

import (
	"errors"
	"fmt"
	"strings"

	"algoverse/internal/kv"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
)

// Config controls runtime behavior for the TUI and the CLI.
type Config struct {
	Backend     string `env:"BACKEND"`
	DataDir     string `env:"DATA_DIR"`
	DatasetPath string `env:"DATASET"`
	LogPath     string `env:"LOG_PATH"`
	LogLevel    string `env:"LOG_LEVEL"`
	// QuotaBytes caps the total stored size; 0 disables the cap.
	QuotaBytes int64 `env:"QUOTA_BYTES"`
	ASCIIOnly  bool  `env:"ASCII"`
	NoMotion   bool  `env:"NO_MOTION"`
}

const defaultQuotaBytes = 5 << 20

func DefaultConfig() Config {
	return Config{
		Backend:    kv.BackendSQLite,
		LogLevel:   "info",
		QuotaBytes: defaultQuotaBytes,
	}
}

// LoadEnv overrides fields from ALGOVERSE_* environment variables.
func (c *Config) LoadEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: "ALGOVERSE_"}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case kv.BackendSQLite, kv.BackendFile, kv.BackendMemory:
	case "":
		c.Backend = kv.BackendSQLite
	default:
		return fmt.Errorf("invalid storage backend %q", c.Backend)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	case "":
		c.LogLevel = "info"
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.QuotaBytes < 0 {
		return fmt.Errorf("invalid quota %d: must not be negative", c.QuotaBytes)
	}

	var err error
	if c.DataDir, err = expand(c.DataDir); err != nil {
		return err
	}
	if c.DatasetPath, err = expand(c.DatasetPath); err != nil {
		return err
	}
	if c.LogPath, err = expand(c.LogPath); err != nil {
		return err
	}

	if c.DataDir == "" {
		dir, err := gap.NewScope(gap.User, "algoverse").DataPath("")
		if err != nil {
			return errors.New("cannot resolve user data directory")
		}
		c.DataDir = dir
	}
	return nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	out, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return out, nil
}
