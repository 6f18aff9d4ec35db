// Package api serves the JSON API, the landing page and the websocket
// event stream.
package api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"moodwell/internal/journal"
	"moodwell/internal/logging"
	"moodwell/internal/lowlands"
	"moodwell/internal/mood"
	"moodwell/internal/nudge"
	"moodwell/internal/sessions"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionStore is the session operations the API exposes
type SessionStore interface {
	List() []sessions.Session
	Load(id string) (sessions.Session, bool)
	Current() (sessions.Session, bool)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Chatter starts sessions and exchanges chat turns
type Chatter interface {
	Start(ctx context.Context, m mood.Mood) (sessions.Session, error)
	Send(ctx context.Context, sessionID, text string) (sessions.Session, sessions.Message, error)
}

// Journal lists entries and derived patterns
type Journal interface {
	List() []journal.Entry
	Patterns() []journal.Pattern
}

// Reflector turns journal text into entries
type Reflector interface {
	Submit(ctx context.Context, content string) (journal.Entry, error)
	RespondToPast(ctx context.Context, entryID, response string) (journal.Entry, error)
}

// Game is the lowlands checklist
type Game interface {
	State() lowlands.State
	Complete(ctx context.Context, taskID string) (lowlands.State, lowlands.Task, bool, error)
	Reset(ctx context.Context) (lowlands.State, error)
}

// Nudger picks reminder messages
type Nudger interface {
	Pick(t nudge.Tone) (string, error)
}

// Deps bundles what the server needs
type Deps struct {
	Sessions  SessionStore
	Chat      Chatter
	Journal   Journal
	Reflector Reflector
	Game      Game
	Nudges    Nudger
	Personas  *mood.Registry
	Provider  string
	Logger    *logging.Logger
}

// Server holds dependencies and provides HTTP handlers
type Server struct {
	Deps
	wsHub     *WebSocketHub
	templates *template.Template
}

// NewServer creates a server and parses the embedded templates. The hub
// runs until ctx is cancelled.
func NewServer(ctx context.Context, deps Deps) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}

	srv := &Server{
		Deps:      deps,
		wsHub:     NewWebSocketHub(deps.Logger.Component("websocket")),
		templates: tmpl,
	}
	go srv.wsHub.Run(ctx)

	return srv, nil
}

// Handler returns the routed API with JSON bodies for unmatched paths and
// methods.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(&jsonErrorWriter{ResponseWriter: w}, r)
	})
}

// RegisterRoutes sets up all HTTP routes
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /api/moods", s.handleMoods)

	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("POST /api/sessions", s.handleStartSession)
	mux.HandleFunc("DELETE /api/sessions", s.handleClearSessions)
	mux.HandleFunc("GET /api/sessions/current", s.handleCurrentSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleLoadSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/messages", s.handleSendMessage)

	mux.HandleFunc("GET /api/journal", s.handleListJournal)
	mux.HandleFunc("POST /api/journal", s.handleSubmitJournal)
	mux.HandleFunc("GET /api/journal/patterns", s.handlePatterns)
	mux.HandleFunc("POST /api/journal/{id}/respond", s.handleRespondToPast)

	mux.HandleFunc("GET /api/lowlands", s.handleLowlands)
	mux.HandleFunc("POST /api/lowlands/tasks/{id}/complete", s.handleCompleteTask)
	mux.HandleFunc("POST /api/lowlands/reset", s.handleResetLowlands)

	mux.HandleFunc("GET /api/nudge", s.handleNudge)

	mux.HandleFunc("GET /ws", s.handleWebSocket)
}
