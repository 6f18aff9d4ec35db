package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"moodwell/internal/logging"
)

// Backend is the storage a Collection or Document mirrors itself into
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Collection is an in-memory list mirrored to one key as a JSON array.
// Every mutation is written through before the in-memory list changes, so
// a failed write leaves both sides as they were.
type Collection[T any] struct {
	mu      sync.RWMutex
	backend Backend
	key     string
	items   []T
}

// LoadCollection reads key from backend. A missing key, a read failure and a
// corrupt value all yield an empty collection; the latter two are logged and
// a corrupt value is copied to key+CorruptSuffix first.
func LoadCollection[T any](ctx context.Context, backend Backend, key string, logger *logging.Logger) *Collection[T] {
	c := &Collection[T]{backend: backend, key: key}
	logger = logger.WithContext("key", key)

	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("failed to read stored collection, starting empty")
		return c
	}
	if !ok {
		return c
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		cerr := &CorruptError{Key: key, Err: err}
		logger.WithError(cerr).Warn("stored collection is corrupt, starting empty")
		if perr := backend.Put(ctx, key+CorruptSuffix, raw); perr != nil {
			logger.WithError(perr).Error("failed to preserve corrupt collection")
		}
		return c
	}

	c.items = items
	logger.WithContext("count", len(items)).Debug("collection loaded")
	return c
}

// Items returns a copy of the current list
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Mutate computes a new list from the current one, persists it, then installs
// it. fn receives a copy and may modify it freely; returning changed=false
// skips the write.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) (next []T, changed bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := make([]T, len(c.items))
	copy(current, c.items)

	next, changed := fn(current)
	if !changed {
		return nil
	}
	if next == nil {
		next = []T{}
	}

	if err := c.write(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// Replace persists and installs items wholesale
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	return c.Mutate(ctx, func([]T) ([]T, bool) { return items, true })
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	return c.backend.Put(ctx, c.key, data)
}
