package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"moodwell/internal/chat"
	"moodwell/internal/journal"
	"moodwell/internal/kv"
	"moodwell/internal/llm"
	"moodwell/internal/logging"
	"moodwell/internal/lowlands"
	"moodwell/internal/mood"
	"moodwell/internal/nudge"
	"moodwell/internal/sessions"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Name() string { return "fake" }

type testEnv struct {
	srv     *Server
	handler http.Handler
	client  *fakeLLM
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := kv.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("Failed to open kv store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logging.Discard()
	client := &fakeLLM{reply: "I'm listening."}
	personas := mood.NewRegistry()
	sessStore := sessions.NewStore(ctx, db, logger)
	journalStore := journal.NewStore(ctx, db, logger)

	srv, err := NewServer(ctx, Deps{
		Sessions:  sessStore,
		Chat:      chat.NewService(sessStore, personas, client, logger),
		Journal:   journalStore,
		Reflector: journal.NewReflector(journalStore, client, logger),
		Game:      lowlands.NewGame(ctx, db, logger),
		Nudges:    nudge.NewPicker(),
		Personas:  personas,
		Provider:  client.Name(),
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return &testEnv{srv: srv, handler: srv.Handler(), client: client}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestLandingPage(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Dr. Joy", "Dr. Hope", "model: fake"} {
		if !strings.Contains(body, want) {
			t.Errorf("landing page missing %q", want)
		}
	}

	if rec := env.do(t, http.MethodGet, "/nope", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d", rec.Code)
	}
}

func TestMoods(t *testing.T) {
	env := newTestEnv(t)
	moods := decode[[]moodInfo](t, env.do(t, http.MethodGet, "/api/moods", nil))
	if len(moods) != 6 {
		t.Fatalf("expected 6 moods, got %d", len(moods))
	}
	if moods[0].Mood != mood.Happy || moods[0].Therapist != "Dr. Joy" {
		t.Errorf("first mood = %+v", moods[0])
	}
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/sessions", map[string]string{"mood": "happy"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	sess := decode[sessions.Session](t, rec)
	if sess.Title != "Happy Session" || len(sess.Messages) != 1 {
		t.Errorf("session = %+v", sess)
	}

	rec = env.do(t, http.MethodPost, "/api/sessions/"+sess.ID+"/messages", map[string]string{"content": "Today was lovely"})
	if rec.Code != http.StatusOK {
		t.Fatalf("send status = %d: %s", rec.Code, rec.Body)
	}
	sent := decode[struct {
		Session sessions.Session `json:"session"`
		Reply   sessions.Message `json:"reply"`
	}](t, rec)
	if sent.Reply.Content != "I'm listening." {
		t.Errorf("reply = %+v", sent.Reply)
	}
	if sent.Session.Title != "Today was lovely..." {
		t.Errorf("title = %q", sent.Session.Title)
	}

	list := decode[[]sessions.Session](t, env.do(t, http.MethodGet, "/api/sessions", nil))
	if len(list) != 1 || len(list[0].Messages) != 3 {
		t.Errorf("list = %+v", list)
	}

	if rec := env.do(t, http.MethodGet, "/api/sessions/"+sess.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("load status = %d", rec.Code)
	}
	cur := decode[sessions.Session](t, env.do(t, http.MethodGet, "/api/sessions/current", nil))
	if cur.ID != sess.ID {
		t.Errorf("current = %q", cur.ID)
	}

	if rec := env.do(t, http.MethodDelete, "/api/sessions/"+sess.ID, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/sessions/"+sess.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("load after delete status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/sessions/current", nil); rec.Code != http.StatusNotFound {
		t.Errorf("current after delete status = %d", rec.Code)
	}
}

func TestSessionErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"bad mood", http.MethodPost, "/api/sessions", map[string]string{"mood": "sleepy"}, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/sessions", "{", http.StatusBadRequest},
		{"unknown session message", http.MethodPost, "/api/sessions/missing/messages", map[string]string{"content": "hi"}, http.StatusNotFound},
		{"wrong method", http.MethodPut, "/api/sessions", nil, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body)
			}
		})
	}

	sess := decode[sessions.Session](t, env.do(t, http.MethodPost, "/api/sessions", map[string]string{"mood": "neutral"}))
	rec := env.do(t, http.MethodPost, "/api/sessions/"+sess.ID+"/messages", map[string]string{"content": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank message status = %d", rec.Code)
	}
	if e := decode[errorResponse](t, rec); e.Error != chat.ErrEmptyMessage.Error() {
		t.Errorf("error body = %+v", e)
	}
}

func TestRouterErrorsAreJSON(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		method    string
		path      string
		want      int
		wantError string
		wantAllow string
	}{
		{"wrong method on collection", http.MethodPut, "/api/sessions", http.StatusMethodNotAllowed, "Method not allowed", "GET"},
		{"wrong method on item", http.MethodPatch, "/api/sessions/abc", http.StatusMethodNotAllowed, "Method not allowed", "DELETE"},
		{"wrong method on action", http.MethodGet, "/api/lowlands/reset", http.StatusMethodNotAllowed, "Method not allowed", "POST"},
		{"unknown path", http.MethodGet, "/api/nowhere", http.StatusNotFound, "Not found", ""},
		{"handler 404 untouched", http.MethodGet, "/api/sessions/current", http.StatusNotFound, "No session selected", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, nil)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if tt.wantAllow != "" && !strings.Contains(rec.Header().Get("Allow"), tt.wantAllow) {
				t.Errorf("Allow = %q, want it to list %s", rec.Header().Get("Allow"), tt.wantAllow)
			}
			var e errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatalf("body is not JSON: %q", rec.Body)
			}
			if e.Error != tt.wantError {
				t.Errorf("error = %q, want %q", e.Error, tt.wantError)
			}
		})
	}
}

func TestSendDegradesOnModelFailure(t *testing.T) {
	env := newTestEnv(t)
	env.client.err = &llm.APIError{StatusCode: 502, Err: errors.New("bad gateway")}

	sess := decode[sessions.Session](t, env.do(t, http.MethodPost, "/api/sessions", map[string]string{"mood": "overwhelmed"}))
	rec := env.do(t, http.MethodPost, "/api/sessions/"+sess.ID+"/messages", map[string]string{"content": "help"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "trouble connecting") {
		t.Errorf("expected fallback reply, got %s", rec.Body)
	}
}

func TestClearSessions(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/sessions", map[string]string{"mood": "happy"})
	env.do(t, http.MethodPost, "/api/sessions", map[string]string{"mood": "focused"})

	if rec := env.do(t, http.MethodDelete, "/api/sessions", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", rec.Code)
	}
	if list := decode[[]sessions.Session](t, env.do(t, http.MethodGet, "/api/sessions", nil)); len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
}

func TestJournalRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.client.reply = `{"reflection":"You noticed a lot.","followUp":"What stood out?","mood":"hopeful","themes":["growth","work"]}`

	for _, text := range []string{"first day", "second day"} {
		rec := env.do(t, http.MethodPost, "/api/journal", map[string]string{"content": text})
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit status = %d: %s", rec.Code, rec.Body)
		}
	}

	entries := decode[[]journal.Entry](t, env.do(t, http.MethodGet, "/api/journal", nil))
	if len(entries) != 2 || entries[0].Content != "second day" {
		t.Fatalf("entries = %+v", entries)
	}

	patterns := decode[[]journal.Pattern](t, env.do(t, http.MethodGet, "/api/journal/patterns", nil))
	if len(patterns) != 2 || patterns[0].Theme != "growth" || patterns[0].Frequency != 2 {
		t.Errorf("patterns = %+v", patterns)
	}

	env.client.reply = "You've grown."
	rec := env.do(t, http.MethodPost, "/api/journal/"+entries[1].ID+"/respond", map[string]string{"response": "Still here"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("respond status = %d: %s", rec.Code, rec.Body)
	}
	if e := decode[journal.Entry](t, rec); e.AIReflection != "You've grown." {
		t.Errorf("respond entry = %+v", e)
	}

	if rec := env.do(t, http.MethodPost, "/api/journal/missing/respond", map[string]string{"response": "x"}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown entry status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/api/journal", map[string]string{"content": ""}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty entry status = %d", rec.Code)
	}

	env.client.err = &llm.APIError{Err: errors.New("down")}
	if rec := env.do(t, http.MethodPost, "/api/journal/"+entries[0].ID+"/respond", map[string]string{"response": "x"}); rec.Code != http.StatusBadGateway {
		t.Errorf("failed respond status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/api/journal", map[string]string{"content": "offline"}); rec.Code != http.StatusCreated {
		t.Errorf("submit should degrade on model failure, status = %d", rec.Code)
	}
}

func TestLowlandsRoutes(t *testing.T) {
	env := newTestEnv(t)

	view := decode[lowlandsView](t, env.do(t, http.MethodGet, "/api/lowlands", nil))
	if view.State.FogLevel != 85 || len(view.Tasks) != 6 {
		t.Errorf("initial view = %+v", view)
	}

	type completeResp struct {
		lowlandsView
		Completed     bool   `json:"completed"`
		Encouragement string `json:"encouragement"`
	}
	first := decode[completeResp](t, env.do(t, http.MethodPost, "/api/lowlands/tasks/make-coffee/complete", nil))
	if !first.Completed || first.State.FogLevel != 75 || first.Encouragement == "" {
		t.Errorf("first completion = %+v", first)
	}
	again := decode[completeResp](t, env.do(t, http.MethodPost, "/api/lowlands/tasks/make-coffee/complete", nil))
	if again.Completed || again.State.FogLevel != 75 {
		t.Errorf("repeat completion = %+v", again)
	}

	if rec := env.do(t, http.MethodPost, "/api/lowlands/tasks/nap/complete", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown task status = %d", rec.Code)
	}

	reset := decode[lowlandsView](t, env.do(t, http.MethodPost, "/api/lowlands/reset", nil))
	if reset.State.FogLevel != 85 || len(reset.State.CompletedTasks) != 0 {
		t.Errorf("reset view = %+v", reset)
	}
}

func TestNudgeRoute(t *testing.T) {
	env := newTestEnv(t)

	got := decode[map[string]string](t, env.do(t, http.MethodGet, "/api/nudge?tone=funny", nil))
	msgs, _ := nudge.Messages(nudge.Funny)
	found := false
	for _, m := range msgs {
		found = found || m == got["message"]
	}
	if !found || got["tone"] != "funny" {
		t.Errorf("nudge = %+v", got)
	}

	if rec := env.do(t, http.MethodGet, "/api/nudge?tone=rude", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown tone status = %d", rec.Code)
	}
}
