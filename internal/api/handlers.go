package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/yourusername/keiba-desk/internal/betting"
	"github.com/yourusername/keiba-desk/internal/models"
)

type betTypeResponse struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Arity   int    `json:"arity"`
	Ordered bool   `json:"ordered"`
	MinPool int    `json:"min_pool"`
}

func (s *Server) listBetTypes(w http.ResponseWriter, r *http.Request) {
	out := make([]betTypeResponse, 0, len(betting.AllBetTypes))
	for _, bt := range betting.AllBetTypes {
		out = append(out, betTypeResponse{
			Code:    bt.String(),
			Label:   bt.Label(),
			Arity:   bt.Arity(),
			Ordered: bt.Ordered(),
			MinPool: bt.MinPool(),
		})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.desk.CreateSession(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, state.Snapshot())
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	state, err := s.desk.Session(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, state.Snapshot())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.desk.DeleteSession(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setRaceMeta(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var meta models.RaceMeta
	if err := s.decode(r, &meta); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.desk.SetRaceMeta(id, meta); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, meta)
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rows, err := s.desk.Entries(r.Context(), id, r.URL.Query().Get("sort"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Server) listScores(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rows, err := s.desk.Scores(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rows, err := s.desk.Profiles(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Server) listForms(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rows, err := s.desk.Forms(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

type markRequest struct {
	Mark string `json:"mark"`
}

type manualScoreRequest struct {
	Value *int `json:"value" validate:"required"`
}

func (s *Server) setMark(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req markRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	mark, err := models.ParseMark(req.Mark)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	horse := horseParam(r)
	if err := s.desk.SetMark(r.Context(), id, horse, mark); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"horse": horse, "mark": string(mark)})
}

func (s *Server) setManualScore(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req manualScoreRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	horse := horseParam(r)
	if err := s.desk.SetManualScore(r.Context(), id, horse, *req.Value); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"horse": horse, "value": *req.Value})
}

func (s *Server) clearAdjustments(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.desk.ClearAdjustments(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func horseParam(r *http.Request) string {
	raw := chi.URLParam(r, "horse")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
