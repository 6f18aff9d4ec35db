package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"moodwell/internal/llm"
	"moodwell/internal/logging"
)

var (
	// ErrEmptyEntry is returned for blank journal text
	ErrEmptyEntry = errors.New("journal entry is empty")
	// ErrEntryNotFound is returned when responding to an unknown entry
	ErrEntryNotFound = errors.New("journal entry not found")
)

const analysisPrompt = `You are Mind Mirror, an empathetic AI journaling companion that helps users reflect deeply on their emotions and thoughts. Your role is to:

1. Provide thoughtful, non-judgmental reflections on journal entries
2. Identify emotional themes and patterns
3. Generate follow-up prompts that encourage deeper self-reflection
4. Detect the overall mood/emotional tone

Respond in JSON format with:
{
  "reflection": "A gentle, insightful 1-2 sentence reflection that mirrors back what you notice",
  "followUp": "A thoughtful question or prompt for deeper reflection",
  "mood": "One word describing the primary emotional tone (e.g., anxious, joyful, reflective, frustrated, hopeful, melancholy, excited, overwhelmed, peaceful, conflicted)",
  "themes": ["array", "of", "key", "themes", "or", "concepts", "mentioned"]
}

Be warm, understanding, and focus on helping the user gain clarity about their inner world. Avoid being prescriptive or giving advice - instead, help them discover their own insights.`

const pastSelfPrompt = `You are Mind Mirror, helping a user have a conversation with their past self through journaling. The user is responding to an old journal entry. Provide a thoughtful reflection on the growth, changes, or continuity between their past and present thoughts.

Respond with a gentle, insightful reflection (2-3 sentences) that helps them see the connection between who they were and who they are now.`

// entry dates are shown the way a US locale prints them
const dateLayout = "1/2/2006"

// Reflector turns journal text into stored entries with model reflections
type Reflector struct {
	store  *Store
	client llm.Client
	schema *llm.Schema
	logger *logging.Logger
	now    func() time.Time
}

// ReflectorOption customises a Reflector
type ReflectorOption func(*Reflector)

// WithStructuredOutput asks the endpoint for schema-constrained JSON
func WithStructuredOutput() ReflectorOption {
	return func(r *Reflector) {
		schema, err := llm.SchemaFor[Analysis]("journal_analysis", "Mind Mirror reflection on a journal entry")
		if err != nil {
			r.logger.WithError(err).Warn("structured output disabled")
			return
		}
		r.schema = schema
	}
}

// WithNow overrides time.Now
func WithNow(now func() time.Time) ReflectorOption {
	return func(r *Reflector) { r.now = now }
}

// NewReflector builds a Reflector over store and client
func NewReflector(store *Store, client llm.Client, logger *logging.Logger, opts ...ReflectorOption) *Reflector {
	r := &Reflector{
		store:  store,
		client: client,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit analyses content and stores the resulting entry. Model failures
// never fail the call: a failed request uses the network fallback and
// unparseable output uses the malformed fallback.
func (r *Reflector) Submit(ctx context.Context, content string) (Entry, error) {
	if strings.TrimSpace(content) == "" {
		return Entry{}, ErrEmptyEntry
	}

	analysis := r.analyze(ctx, content)

	id, err := newEntryID()
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{
		ID:             id,
		Content:        content,
		AIReflection:   analysis.Reflection,
		FollowUpPrompt: analysis.FollowUp,
		Mood:           analysis.Mood,
		Themes:         analysis.Themes,
		Timestamp:      r.now(),
	}
	if err := r.store.Add(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (r *Reflector) analyze(ctx context.Context, content string) Analysis {
	req := llm.UserTurn(analysisPrompt, content, 0.7, 400)
	req.Schema = r.schema

	text, err := r.client.Complete(ctx, req)
	if err != nil {
		r.logger.WithError(err).Warn("journal analysis failed, using fallback reflection")
		return networkFallback()
	}

	analysis, result := ParseAnalysis(text)
	if result == FallbackMalformed {
		r.logger.WithContext("response_length", len(text)).Warn("journal analysis was not valid JSON, using fallback reflection")
	}
	return analysis
}

// RespondToPast sends the user's reply to an earlier entry to the model and
// stores the reflection as a new entry. A failed request stores nothing.
func (r *Reflector) RespondToPast(ctx context.Context, entryID, response string) (Entry, error) {
	if strings.TrimSpace(response) == "" {
		return Entry{}, ErrEmptyEntry
	}
	past, ok := r.store.Get(entryID)
	if !ok {
		return Entry{}, ErrEntryNotFound
	}

	date := past.Timestamp.Local().Format(dateLayout)
	prompt := fmt.Sprintf("Past entry from %s: \"%s\"\n\nMy response today: \"%s\"", date, past.Content, response)

	reflection, err := r.client.Complete(ctx, llm.UserTurn(pastSelfPrompt, prompt, 0.7, 300))
	if err != nil {
		r.logger.WithFields(logging.Fields{"entry_id": entryID, "error": err.Error()}).Error("past-self reflection failed")
		return Entry{}, fmt.Errorf("failed to reflect on past entry: %w", err)
	}

	id, err := newEntryID()
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{
		ID:           id,
		Content:      fmt.Sprintf("Responding to my past self (%s): %s", date, response),
		AIReflection: reflection,
		Mood:         "reflective",
		Themes:       []string{"self-reflection", "personal-growth", "time-perspective"},
		Timestamp:    r.now(),
	}
	if err := r.store.Add(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func newEntryID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to allocate entry id: %w", err)
	}
	return id.String(), nil
}
