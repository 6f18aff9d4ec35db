// Package chat runs mood-specific therapist conversations on top of the
// session store.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moodwell/internal/llm"
	"moodwell/internal/logging"
	"moodwell/internal/mood"
	"moodwell/internal/sessions"
)

// FallbackReply is appended when the model cannot be reached
const FallbackReply = "I'm having trouble connecting right now, but I'm still here with you. Your feelings are valid, and you're not alone. 💜 Please check your API configuration and try again."

const (
	temperature = 0.7
	maxTokens   = 500
)

var (
	// ErrEmptyMessage is returned for blank user text
	ErrEmptyMessage = errors.New("message is empty")
)

// Service wires sessions, personas and the model together
type Service struct {
	sessions *sessions.Store
	personas *mood.Registry
	client   llm.Client
	logger   *logging.Logger
	now      func() time.Time
}

// NewService creates a chat service
func NewService(store *sessions.Store, personas *mood.Registry, client llm.Client, logger *logging.Logger) *Service {
	return &Service{
		sessions: store,
		personas: personas,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}
}

// Start creates a session for m seeded with the persona's greeting
func (s *Service) Start(ctx context.Context, m mood.Mood) (sessions.Session, error) {
	id, err := s.sessions.Create(ctx, m)
	if err != nil {
		return sessions.Session{}, err
	}

	greeting := sessions.Message{
		Role:      sessions.RoleAssistant,
		Content:   s.personas.Persona(m).Greeting,
		Timestamp: s.now(),
	}
	if err := s.sessions.Update(ctx, id, []sessions.Message{greeting}); err != nil {
		return sessions.Session{}, err
	}

	sess, _ := s.sessions.Load(id)
	return sess, nil
}

// Send appends the user's text to the session, asks the model for a reply
// and appends it. The user turn is persisted before the model is called.
// A failed model call appends FallbackReply instead of returning an error.
func (s *Service) Send(ctx context.Context, sessionID, text string) (sessions.Session, sessions.Message, error) {
	if strings.TrimSpace(text) == "" {
		return sessions.Session{}, sessions.Message{}, ErrEmptyMessage
	}

	sess, err := s.sessions.Append(ctx, sessionID, sessions.Message{
		Role:      sessions.RoleUser,
		Content:   text,
		Timestamp: s.now(),
	})
	if err != nil {
		return sessions.Session{}, sessions.Message{}, err
	}

	persona := s.personas.Persona(sess.Mood)
	logger := s.logger.WithFields(logging.Fields{"session_id": sessionID, "mood": sess.Mood})

	content, err := s.client.Complete(ctx, llm.UserTurn(persona.SystemPrompt, text, temperature, maxTokens))
	if err != nil {
		logger.WithError(err).Warn("therapist reply failed, sending fallback")
		content = FallbackReply
	}

	reply := sessions.Message{
		Role:      sessions.RoleAssistant,
		Content:   content,
		Timestamp: s.now(),
	}
	updated, err := s.sessions.Append(ctx, sessionID, reply)
	if errors.Is(err, sessions.ErrNotFound) {
		// deleted while the model was answering
		return sessions.Session{}, sessions.Message{}, sessions.ErrNotFound
	} else if err != nil {
		return sessions.Session{}, sessions.Message{}, fmt.Errorf("failed to save reply: %w", err)
	}

	logger.WithContext("messages", len(updated.Messages)).Debug("chat turn stored")
	return updated, reply, nil
}
