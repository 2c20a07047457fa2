package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv_entries (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_ts TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	// Older files created the table before updated_ts existed.
	if _, err := s.db.ExecContext(ctx, `ALTER TABLE kv_entries ADD COLUMN updated_ts TEXT NOT NULL DEFAULT ''`); err != nil {
		msg := strings.ToLower(err.Error())
		if !strings.Contains(msg, "duplicate column name") {
			return fmt.Errorf("ensure schema alter kv_entries.updated_ts: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv: empty key")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries(key, value, updated_ts) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_ts = excluded.updated_ts
	`, key, value, time.Now().UTC().Format(timeLayout))
	return err
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) Usage(ctx context.Context) (int64, error) {
	var used int64
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0) FROM kv_entries`)
	if err := row.Scan(&used); err != nil {
		return 0, err
	}
	return used, nil
}

// UpdatedAt reports when a key was last written. The zero time means the key
// is absent or predates timestamps.
func (s *SQLiteStore) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	row := s.db.QueryRowContext(ctx, `SELECT updated_ts FROM kv_entries WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
