package kv

import (
	"context"
	"errors"
	"fmt"
)

// Limited rejects writes that would push the wrapped store past a byte quota,
// the way a browser origin store does.
type Limited struct {
	SizedStore
	quota int64
}

// Limit wraps s with a quota in bytes. A non-positive quota disables the check.
func Limit(s SizedStore, quota int64) *Limited {
	return &Limited{SizedStore: s, quota: quota}
}

func (l *Limited) Set(ctx context.Context, key, value string) error {
	if l.quota <= 0 {
		return l.SizedStore.Set(ctx, key, value)
	}
	used, err := l.Usage(ctx)
	if err != nil {
		return fmt.Errorf("quota usage: %w", err)
	}
	prev, err := l.Get(ctx, key)
	switch {
	case err == nil:
		used -= int64(len(key) + len(prev))
	case !errors.Is(err, ErrNotFound):
		return err
	}
	if next := used + int64(len(key)+len(value)); next > l.quota {
		return fmt.Errorf("set %q (%d of %d bytes): %w", key, next, l.quota, ErrQuotaExceeded)
	}
	return l.SizedStore.Set(ctx, key, value)
}
