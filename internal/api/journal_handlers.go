package api

import (
	"errors"
	"net/http"

	"moodwell/internal/journal"
)

func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Journal.List())
}

// handleSubmitJournal analyses and stores an entry. Model failures are
// absorbed by the reflector, so only input and storage errors surface.
func (s *Server) handleSubmitJournal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	entry, err := s.Reflector.Submit(r.Context(), req.Content)
	if errors.Is(err, journal.ErrEmptyEntry) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.Logger.WithError(err).Error("failed to submit journal entry")
		s.writeError(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	s.wsHub.Broadcast(EventJournalAdded, entry)
	s.writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Journal.Patterns())
}

// handleRespondToPast stores a conversation with a past entry. Unlike
// submissions, a failed model call is reported to the client.
func (s *Server) handleRespondToPast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Response string `json:"response"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	entry, err := s.Reflector.RespondToPast(r.Context(), r.PathValue("id"), req.Response)
	switch {
	case errors.Is(err, journal.ErrEmptyEntry):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, journal.ErrEntryNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.Logger.WithError(err).Warn("past-self conversation failed")
		s.writeError(w, http.StatusBadGateway, "Could not reach the reflection service")
		return
	}

	s.wsHub.Broadcast(EventJournalAdded, entry)
	s.writeJSON(w, http.StatusCreated, entry)
}
