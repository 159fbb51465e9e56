// internal/httpserver/routes_sessions.go
//
// Step-by-step solves under /sessions:
//   - POST /sessions           → start a session (same body as /solve)
//   - POST /sessions/{id}/step → make the next guess
//   - GET  /sessions/{id}      → history so far
//
// A session is removed from the store as soon as it is solved or exhausted;
// the finishing step response carries the final result.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/store"
)

// mountSessions registers all /sessions routes.
func (s *Server) mountSessions(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Get("/{id}", s.handleGetSession)
		r.Post("/{id}/step", s.handleStep)
	})
}

type sessionRes struct {
	ID        string        `json:"id"`
	Heuristic string        `json:"heuristic"`
	Length    int           `json:"length"`
	Status    solver.Status `json:"status"`
	Remaining int           `json:"remaining"`
	History   []stepView    `json:"history"`
	Last      *stepView     `json:"last,omitempty"`
}

func sessionView(e *store.Entry) sessionRes {
	return sessionRes{
		ID:        e.ID,
		Heuristic: e.Heuristic,
		Length:    e.Length,
		Status:    e.Session.Status(),
		Remaining: e.Session.Remaining(),
		History:   viewsOf(e.Session.History()),
	}
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if !decode(w, r, &req) {
		return
	}
	sv, err := s.solverFor(req.Length)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	h, err := s.resolve(req.Heuristic)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	sess, err := sv.NewSession(h, s.pickSecret(sv, req))
	if err != nil {
		writeSolveError(w, err)
		return
	}
	e := store.NewEntry(sess, sv.Vocabulary().Length())
	if err := s.opts.Store.Save(r.Context(), e); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sessionView(e))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	e, err := s.opts.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSolveError(w, err)
		return
	}
	e.Lock()
	defer e.Unlock()
	writeJSON(w, http.StatusOK, sessionView(e))
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e, err := s.opts.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeSolveError(w, err)
		return
	}
	e.Lock()
	defer e.Unlock()

	rec, err := e.Session.Step()
	if err != nil {
		s.opts.Metrics.Observe(e.Heuristic, e.Session.Result(), err)
		_ = s.opts.Store.Delete(ctx, e.ID)
		writeSolveError(w, err)
		return
	}
	view := sessionView(e)
	last := viewOf(rec)
	view.Last = &last

	if e.Session.Status().Terminal() {
		s.opts.Metrics.Observe(e.Heuristic, e.Session.Result(), nil)
		_ = s.opts.Store.Delete(ctx, e.ID)
	} else {
		_ = s.opts.Store.Save(ctx, e)
	}
	writeJSON(w, http.StatusOK, view)
}
