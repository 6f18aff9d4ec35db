package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"moodwell/internal/logging"
)

// Document is a single JSON value mirrored to one key, with an initial value
// used when nothing is stored.
type Document[T any] struct {
	mu      sync.RWMutex
	backend Backend
	key     string
	initial func() T
	value   T
}

// LoadDocument reads key from backend, falling back to initial() when the key
// is missing, unreadable or corrupt.
func LoadDocument[T any](ctx context.Context, backend Backend, key string, initial func() T, logger *logging.Logger) *Document[T] {
	d := &Document[T]{backend: backend, key: key, initial: initial, value: initial()}
	logger = logger.WithContext("key", key)

	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("failed to read stored document, using initial value")
		return d
	}
	if !ok {
		return d
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.WithError(&CorruptError{Key: key, Err: err}).Warn("stored document is corrupt, using initial value")
		if perr := backend.Put(ctx, key+CorruptSuffix, raw); perr != nil {
			logger.WithError(perr).Error("failed to preserve corrupt document")
		}
		return d
	}
	d.value = v
	return d
}

// Get returns the current value. Callers must not mutate reference fields.
func (d *Document[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

// Update applies fn, persists the result, then installs it
func (d *Document[T]) Update(ctx context.Context, fn func(v T) (next T, changed bool)) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, changed := fn(d.value)
	if !changed {
		return d.value, nil
	}

	data, err := json.Marshal(next)
	if err != nil {
		return d.value, fmt.Errorf("failed to encode %s: %w", d.key, err)
	}
	if err := d.backend.Put(ctx, d.key, data); err != nil {
		return d.value, err
	}
	d.value = next
	return next, nil
}

// Reset removes the stored key and returns to the initial value
func (d *Document[T]) Reset(ctx context.Context) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.backend.Delete(ctx, d.key); err != nil {
		return d.value, err
	}
	d.value = d.initial()
	return d.value, nil
}
