package api

import (
	"errors"
	"net/http"

	"moodwell/internal/lowlands"
	"moodwell/internal/nudge"
)

type lowlandsView struct {
	State    lowlands.State  `json:"state"`
	Tasks    []lowlands.Task `json:"tasks"`
	Progress string          `json:"progress"`
}

func viewOf(st lowlands.State) lowlandsView {
	return lowlandsView{State: st, Tasks: lowlands.Tasks(), Progress: st.ProgressMessage()}
}

func (s *Server) handleLowlands(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, viewOf(s.Game.State()))
}

// handleCompleteTask marks a task done. Repeats are reported with
// completed=false and no encouragement.
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := lowlands.FindTask(id); !ok {
		s.writeError(w, http.StatusNotFound, "unknown task")
		return
	}

	st, task, applied, err := s.Game.Complete(r.Context(), id)
	if err != nil {
		s.Logger.WithError(err).Error("failed to complete task")
		s.writeError(w, http.StatusInternalServerError, "Failed to save progress")
		return
	}

	resp := struct {
		lowlandsView
		Completed     bool   `json:"completed"`
		Encouragement string `json:"encouragement,omitempty"`
	}{lowlandsView: viewOf(st), Completed: applied}
	if applied {
		resp.Encouragement = task.Encouragement
		s.wsHub.Broadcast(EventLowlandsUpdated, st)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResetLowlands(w http.ResponseWriter, r *http.Request) {
	st, err := s.Game.Reset(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("failed to reset game")
		s.writeError(w, http.StatusInternalServerError, "Failed to reset")
		return
	}
	s.wsHub.Broadcast(EventLowlandsUpdated, st)
	s.writeJSON(w, http.StatusOK, viewOf(st))
}

func (s *Server) handleNudge(w http.ResponseWriter, r *http.Request) {
	tone, err := nudge.ParseTone(r.URL.Query().Get("tone"))
	if errors.Is(err, nudge.ErrUnknownTone) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg, err := s.Nudges.Pick(tone)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"tone": string(tone), "message": msg})
}
