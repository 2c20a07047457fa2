package kv

import "context"

type MemoryStore struct {
	entries map[string]string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{entries: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Usage(context.Context) (int64, error) {
	var used int64
	for k, v := range s.entries {
		used += int64(len(k) + len(v))
	}
	return used, nil
}

func (s *MemoryStore) Close() error { return nil }
