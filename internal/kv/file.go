package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
)

// FileStore keeps every entry in one JSON object on disk and rewrites the
// file on each change.
type FileStore struct {
	path    string
	entries map[string]string

	// recovered is where an undecodable file was moved on open.
	recovered string
}

func NewFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{path: path, entries: map[string]string{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.entries); err != nil {
		// A corrupt blob starts empty; the bad file is kept next to it so
		// the next write does not destroy it.
		s.entries = map[string]string{}
		aside := path + ".corrupt"
		if err := os.Rename(path, aside); err != nil {
			return nil, fmt.Errorf("move corrupt %s aside: %w", path, err)
		}
		s.recovered = aside
		return s, nil
	}
	if s.entries == nil {
		s.entries = map[string]string{}
	}
	return s, nil
}

// Recovered reports the path a corrupt file was moved to when the store was
// opened, or "" when the file decoded cleanly.
func (s *FileStore) Recovered() string { return s.recovered }

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return errors.New("kv: empty key")
	}
	prev, had := s.entries[key]
	s.entries[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prev, had := s.entries[key]
	if !had {
		return nil
	}
	delete(s.entries, key)
	if err := s.flush(); err != nil {
		s.entries[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Usage(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var used int64
	for k, v := range s.entries {
		used += int64(len(k) + len(v))
	}
	return used, nil
}

// Keys returns the stored keys in sorted order.
func (s *FileStore) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) flush() error {
	b, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".kv-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
