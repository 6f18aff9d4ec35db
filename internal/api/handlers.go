package api

import (
	"errors"
	"net/http"

	"moodwell/internal/chat"
	"moodwell/internal/mood"
	"moodwell/internal/sessions"
)

type moodInfo struct {
	Mood      mood.Mood `json:"mood"`
	Label     string    `json:"label"`
	Therapist string    `json:"therapist"`
	Specialty string    `json:"specialty"`
}

func (s *Server) moods() []moodInfo {
	out := make([]moodInfo, 0, len(mood.All()))
	for _, m := range mood.All() {
		p := s.Personas.Persona(m)
		out = append(out, moodInfo{Mood: m, Label: m.Label(), Therapist: p.Name, Specialty: p.Specialty})
	}
	return out
}

// handleLanding renders the landing page
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Moods":        s.moods(),
		"SessionCount": len(s.Sessions.List()),
		"EntryCount":   len(s.Journal.List()),
		"Provider":     s.Provider,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.Logger.WithError(err).Error("failed to render landing page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) handleMoods(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.moods())
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.List())
}

// handleStartSession creates a session for the posted mood
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood string `json:"mood"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	m, err := mood.Parse(req.Mood)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.Chat.Start(r.Context(), m)
	if err != nil {
		s.Logger.WithError(err).Error("failed to start session")
		s.writeError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	s.wsHub.Broadcast(EventSessionCreated, sess)
	s.writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleClearSessions(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Clear(r.Context()); err != nil {
		s.Logger.WithError(err).Error("failed to clear history")
		s.writeError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}
	s.wsHub.Broadcast(EventSessionsCleared, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.Sessions.Current()
	if !ok {
		s.writeError(w, http.StatusNotFound, "No session selected")
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// handleLoadSession selects a session and returns it
func (s *Server) handleLoadSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.Sessions.Load(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, sessions.ErrNotFound.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.Logger.WithError(err).Error("failed to delete session")
		s.writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	s.wsHub.Broadcast(EventSessionDeleted, map[string]string{"id": id})
	w.WriteHeader(http.StatusNoContent)
}

// handleSendMessage posts a user turn and returns the assistant reply
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	sess, reply, err := s.Chat.Send(r.Context(), r.PathValue("id"), req.Content)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, sessions.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.Logger.WithError(err).Error("failed to send message")
		s.writeError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	s.wsHub.Broadcast(EventSessionUpdated, sess)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": sess,
		"reply":   reply,
	})
}
