// internal/httpserver/routes_solve.go
//
// One-shot solver endpoints:
//   - GET  /heuristics → registered strategies with their 1-based index
//   - POST /solve      → run a full solve against a given (or picked) secret
//   - POST /suggest    → assisted mode: next guess for an observed history

package httpserver

import (
	"net/http"

	"github.com/robalobadob/wordsolver/internal/render"
	"github.com/robalobadob/wordsolver/internal/secret"
	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/words"
)

type heuristicRow struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

func (s *Server) handleHeuristics(w http.ResponseWriter, r *http.Request) {
	names := s.opts.Registry.Names()
	out := make([]heuristicRow, len(names))
	for i, n := range names {
		out[i] = heuristicRow{Index: i + 1, Name: n}
	}
	writeJSON(w, http.StatusOK, out)
}

// solveReq starts a solve. Secret wins over Key; with neither, the secret is
// picked by today's date.
type solveReq struct {
	Secret    string `json:"secret" validate:"omitempty,alpha"`
	Key       string `json:"key"`
	Heuristic string `json:"heuristic"`
	Length    int    `json:"length" validate:"omitempty,gte=1,lte=32"`
}

type solveRes struct {
	Status    solver.Status `json:"status"`
	Guesses   int           `json:"guesses"`
	Heuristic string        `json:"heuristic"`
	Secret    string        `json:"secret"`
	History   []stepView    `json:"history"`
}

// pickSecret returns the requested secret or a deterministic pick.
func (s *Server) pickSecret(sv *solver.Solver, req solveReq) string {
	if req.Secret != "" {
		return words.Normalize(req.Secret)
	}
	v := sv.Vocabulary()
	if req.Key != "" {
		return secret.Pick(v, s.opts.Salt, req.Key)
	}
	return secret.Daily(v, s.opts.Salt, timeNow())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
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
	word := s.pickSecret(sv, req)
	res, err := sv.Solve(h, word)
	s.opts.Metrics.Observe(h.Name(), res, err)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solveRes{
		Status:    res.Status,
		Guesses:   res.Guesses,
		Heuristic: h.Name(),
		Secret:    word,
		History:   viewsOf(res.History),
	})
}

// observed is one externally played guess. Feedback accepts any encoding
// render.Parse understands.
type observed struct {
	Guess    string `json:"guess" validate:"required,alpha"`
	Feedback string `json:"feedback" validate:"required"`
}

type suggestReq struct {
	History   []observed `json:"history" validate:"dive"`
	Heuristic string     `json:"heuristic"`
	Length    int        `json:"length" validate:"omitempty,gte=1,lte=32"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestReq
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
	length := sv.Vocabulary().Length()
	history := make([]solver.GuessRecord, len(req.History))
	for i, o := range req.History {
		fb, err := render.Parse(o.Feedback, length)
		if err != nil {
			writeSolveError(w, err)
			return
		}
		history[i] = solver.GuessRecord{Guess: o.Guess, Feedback: fb}
	}
	sug, err := sv.Suggest(h, history)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sug)
}
