package journal

import (
	"context"
	"fmt"

	"moodwell/internal/kv"
	"moodwell/internal/logging"
)

// Store is the persisted entry list, newest first. Entries are immutable
// once added and there is no delete.
type Store struct {
	entries *kv.Collection[Entry]
	logger  *logging.Logger
}

// NewStore loads the entry list from backend
func NewStore(ctx context.Context, backend kv.Backend, logger *logging.Logger) *Store {
	s := &Store{
		entries: kv.LoadCollection[Entry](ctx, backend, Key, logger),
		logger:  logger,
	}
	logger.WithContext("count", s.entries.Len()).Debug("journal store ready")
	return s
}

// Add puts e first and persists the list
func (s *Store) Add(ctx context.Context, e Entry) error {
	if e.Themes == nil {
		e.Themes = []string{}
	}
	err := s.entries.Mutate(ctx, func(items []Entry) ([]Entry, bool) {
		return append([]Entry{e}, items...), true
	})
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	s.logger.WithFields(logging.Fields{"entry_id": e.ID, "themes": len(e.Themes)}).Info("journal entry added")
	return nil
}

// List returns every entry, newest first
func (s *Store) List() []Entry {
	return s.entries.Items()
}

// Get finds an entry by id
func (s *Store) Get(id string) (Entry, bool) {
	for _, e := range s.entries.Items() {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Patterns aggregates the current entries
func (s *Store) Patterns() []Pattern {
	return Aggregate(s.entries.Items())
}
