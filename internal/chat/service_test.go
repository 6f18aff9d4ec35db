package chat

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"moodwell/internal/kv"
	"moodwell/internal/llm"
	"moodwell/internal/logging"
	"moodwell/internal/mood"
	"moodwell/internal/sessions"
)

type fakeClient struct {
	reply string
	err   error
	last  llm.Request
	calls int
}

func (f *fakeClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	f.last = req
	return f.reply, f.err
}

func (f *fakeClient) Name() string { return "fake" }

func setup(t *testing.T, client llm.Client) (*Service, *sessions.Store, *kv.Store) {
	t.Helper()
	db, err := kv.Open(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("Failed to open kv store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := sessions.NewStore(context.Background(), db, logging.Discard())
	return NewService(store, mood.NewRegistry(), client, logging.Discard()), store, db
}

func TestStartSeedsGreeting(t *testing.T) {
	svc, store, _ := setup(t, &fakeClient{})

	sess, err := svc.Start(context.Background(), mood.Happy)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(sess.Messages) != 1 || sess.Messages[0].Role != sessions.RoleAssistant {
		t.Fatalf("expected one assistant greeting, got %+v", sess.Messages)
	}
	if !strings.Contains(sess.Messages[0].Content, "Dr. Joy") {
		t.Errorf("greeting = %q", sess.Messages[0].Content)
	}
	if sess.Title != "Happy Session" {
		t.Errorf("title = %q", sess.Title)
	}
	if cur, ok := store.Current(); !ok || cur.ID != sess.ID {
		t.Error("new session should be current")
	}
}

func TestSendStoresTurnAndRetitles(t *testing.T) {
	client := &fakeClient{reply: "That sounds exciting."}
	svc, _, db := setup(t, client)
	sess, _ := svc.Start(context.Background(), mood.Energetic)

	text := "I just started three new projects at once and I cannot decide where to begin"
	updated, reply, err := svc.Send(context.Background(), sess.ID, text)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply.Content != "That sounds exciting." || reply.Role != sessions.RoleAssistant {
		t.Errorf("reply = %+v", reply)
	}
	if len(updated.Messages) != 3 {
		t.Fatalf("expected greeting + user + reply, got %d", len(updated.Messages))
	}
	if updated.Title != string([]rune(text)[:50])+"..." {
		t.Errorf("title = %q", updated.Title)
	}

	if client.last.Temperature != 0.7 || client.last.MaxTokens != 500 {
		t.Errorf("params = %v/%d", client.last.Temperature, client.last.MaxTokens)
	}
	if len(client.last.Messages) != 1 || client.last.Messages[0].Content != text {
		t.Errorf("only the user text should be sent, got %+v", client.last.Messages)
	}
	if !strings.Contains(client.last.SystemPrompt, "Dr. Spark") {
		t.Error("expected energetic persona system prompt")
	}

	reloaded := sessions.NewStore(context.Background(), db, logging.Discard())
	got, ok := reloaded.Get(sess.ID)
	if !ok || len(got.Messages) != 3 {
		t.Errorf("turn not persisted: %+v", got)
	}
}

func TestSendFallsBackOnAPIError(t *testing.T) {
	client := &fakeClient{err: &llm.APIError{StatusCode: 500, Err: errors.New("boom")}}
	svc, _, _ := setup(t, client)
	sess, _ := svc.Start(context.Background(), mood.Neutral)

	updated, reply, err := svc.Send(context.Background(), sess.ID, "hello")
	if err != nil {
		t.Fatalf("Send should degrade, not fail: %v", err)
	}
	if reply.Content != FallbackReply {
		t.Errorf("reply = %q", reply.Content)
	}
	if updated.Messages[len(updated.Messages)-1].Content != FallbackReply {
		t.Error("fallback reply not stored")
	}
}

func TestSendErrors(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	svc, _, _ := setup(t, client)
	sess, _ := svc.Start(context.Background(), mood.Focused)

	if _, _, err := svc.Send(context.Background(), sess.ID, "  "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if _, _, err := svc.Send(context.Background(), "nope", "hi"); !errors.Is(err, sessions.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("model should not be called, got %d calls", client.calls)
	}
}

// slowClient echoes the user turn after a delay so concurrent sends overlap.
type slowClient struct {
	delay time.Duration
}

func (c *slowClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	time.Sleep(c.delay)
	last := req.Messages[len(req.Messages)-1]
	return "reply to " + last.Content, nil
}

func (c *slowClient) Name() string { return "slow" }

func TestConcurrentSendsKeepBothTurns(t *testing.T) {
	svc, store, _ := setup(t, &slowClient{delay: 50 * time.Millisecond})
	sess, err := svc.Start(context.Background(), mood.Neutral)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, text := range []string{"first", "second"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			if _, _, err := svc.Send(context.Background(), sess.ID, text); err != nil {
				errs <- err
			}
		}(text)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Send failed: %v", err)
	}

	got, _ := store.Get(sess.ID)
	if len(got.Messages) != 5 {
		t.Fatalf("expected greeting + 2 user + 2 assistant = 5 messages, got %d: %+v", len(got.Messages), got.Messages)
	}

	contents := make(map[string]bool)
	for _, m := range got.Messages {
		contents[m.Content] = true
	}
	for _, want := range []string{"first", "second", "reply to first", "reply to second"} {
		if !contents[want] {
			t.Errorf("transcript is missing %q", want)
		}
	}
}

// deletingClient removes the session while the reply is being produced.
type deletingClient struct {
	store *sessions.Store
	id    string
}

func (c *deletingClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	if err := c.store.Delete(ctx, c.id); err != nil {
		return "", err
	}
	return "too late", nil
}

func (c *deletingClient) Name() string { return "deleting" }

func TestSendAfterSessionDeleted(t *testing.T) {
	client := &deletingClient{}
	svc, store, _ := setup(t, client)
	sess, _ := svc.Start(context.Background(), mood.Overwhelmed)
	client.store, client.id = store, sess.ID

	if _, _, err := svc.Send(context.Background(), sess.ID, "are you there"); !errors.Is(err, sessions.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, ok := store.Get(sess.ID); ok {
		t.Error("reply must not resurrect a deleted session")
	}
}
