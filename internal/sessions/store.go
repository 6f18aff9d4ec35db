// Package sessions owns the persisted list of chat sessions, newest first,
// and the "currently selected" session.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"moodwell/internal/kv"
	"moodwell/internal/logging"
	"moodwell/internal/mood"
)

// Key is the storage key holding the session list
const Key = "chatHistory"

// ErrNotFound is returned by lookups for an unknown session id
var ErrNotFound = errors.New("session not found")

// Store is the session store. Every mutation is persisted before it returns.
type Store struct {
	mu        sync.Mutex
	list      *kv.Collection[Session]
	currentID string
	logger    *logging.Logger

	now   func() time.Time
	newID func() (string, error)
}

// Option customises a Store
type Option func(*Store)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides id generation
func WithIDs(newID func() (string, error)) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore loads the session list from backend
func NewStore(ctx context.Context, backend kv.Backend, logger *logging.Logger, opts ...Option) *Store {
	s := &Store{
		list:   kv.LoadCollection[Session](ctx, backend, Key, logger),
		logger: logger,
		now:    time.Now,
		newID:  newTimeOrderedID,
	}
	for _, opt := range opts {
		opt(s)
	}
	logger.WithContext("count", s.list.Len()).Debug("session store ready")
	return s
}

// newTimeOrderedID returns a UUIDv7, which embeds the creation time
func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Create starts an empty session for m, puts it first and selects it
func (s *Store) Create(ctx context.Context, m mood.Mood) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("failed to allocate session id: %w", err)
	}

	now := s.now()
	sess := Session{
		ID:          id,
		Mood:        m,
		Title:       DefaultTitle(m),
		Messages:    []Message{},
		CreatedAt:   now,
		LastUpdated: now,
	}

	err = s.list.Mutate(ctx, func(items []Session) ([]Session, bool) {
		return append([]Session{sess}, items...), true
	})
	if err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	s.currentID = id
	s.logger.WithFields(logging.Fields{"session_id": id, "mood": m}).Info("session created")
	return id, nil
}

// Update replaces the transcript of id and bumps LastUpdated. Once the
// transcript has two messages the title follows the first user turn. An
// unknown id is a silent no-op.
func (s *Store) Update(ctx context.Context, id string, messages []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append([]Message(nil), messages...)
	if msgs == nil {
		msgs = []Message{}
	}
	now := s.now()

	found := false
	err := s.list.Mutate(ctx, func(items []Session) ([]Session, bool) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			found = true
			items[i].Messages = msgs
			items[i].LastUpdated = now
			if title, ok := TitleFrom(msgs); ok {
				items[i].Title = title
			}
			return items, true
		}
		return items, false
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if !found {
		s.logger.WithContext("session_id", id).Debug("update for unknown session ignored")
	}
	return nil
}

// Append adds msgs to the end of id's transcript in one locked step and
// returns the stored session. Unlike Update, an unknown id is ErrNotFound.
func (s *Store) Append(ctx context.Context, id string, msgs ...Message) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	var updated Session
	found := false
	err := s.list.Mutate(ctx, func(items []Session) ([]Session, bool) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			found = true
			merged := make([]Message, 0, len(items[i].Messages)+len(msgs))
			merged = append(merged, items[i].Messages...)
			merged = append(merged, msgs...)
			items[i].Messages = merged
			items[i].LastUpdated = now
			if title, ok := TitleFrom(merged); ok {
				items[i].Title = title
			}
			updated = items[i].clone()
			return items, true
		}
		return items, false
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	if !found {
		return Session{}, ErrNotFound
	}
	return updated, nil
}

// Delete removes id, clearing the selection if it pointed there
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.list.Mutate(ctx, func(items []Session) ([]Session, bool) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), true
			}
		}
		return items, false
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if s.currentID == id {
		s.currentID = ""
	}
	s.logger.WithContext("session_id", id).Info("session deleted")
	return nil
}

// Load selects id and returns it. Unknown ids leave the selection unchanged.
func (s *Store) Load(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.find(id)
	if !ok {
		return Session{}, false
	}
	s.currentID = id
	return sess, true
}

// Current returns the selected session, if any
func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentID == "" {
		return Session{}, false
	}
	return s.find(s.currentID)
}

// Get returns id without changing the selection
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// List returns every session, newest first
func (s *Store) List() []Session {
	items := s.list.Items()
	for i := range items {
		items[i] = items[i].clone()
	}
	return items
}

// Clear drops every session and the selection
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.list.Replace(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	s.currentID = ""
	s.logger.Info("history cleared")
	return nil
}

func (s *Store) find(id string) (Session, bool) {
	for _, sess := range s.list.Items() {
		if sess.ID == id {
			return sess.clone(), true
		}
	}
	return Session{}, false
}
