package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("kv: key not found")
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Store is a string key/value port. Implementations are used from a single
// goroutine and are not safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Sizer reports the number of bytes held by a store, counting keys and values.
type Sizer interface {
	Usage(ctx context.Context) (int64, error)
}

// SizedStore is a Store that can report its usage, which is what Limit needs.
type SizedStore interface {
	Store
	Sizer
}
