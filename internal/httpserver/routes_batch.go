// internal/httpserver/routes_batch.go
//
// POST /batch (token required): solve a sample of the vocabulary with one
// or more heuristics and return per-heuristic statistics.

package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsolver/internal/batch"
	"github.com/robalobadob/wordsolver/internal/heuristic"
)

// batchReq selects secrets either explicitly or as a percentage of the
// vocabulary (first N%, 0 meaning all). An empty Heuristics list compares
// every strategy.
type batchReq struct {
	Heuristics []string `json:"heuristics"`
	Secrets    []string `json:"secrets" validate:"omitempty,dive,alpha"`
	Percent    float64  `json:"percent" validate:"gte=0,lte=100"`
	Length     int      `json:"length" validate:"omitempty,gte=1,lte=32"`
	KeepRuns   bool     `json:"keepRuns"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if !decode(w, r, &req) {
		return
	}
	sv, err := s.solverFor(req.Length)
	if err != nil {
		writeSolveError(w, err)
		return
	}

	var hs []heuristic.Heuristic
	if len(req.Heuristics) == 0 {
		hs = s.opts.Registry.All()
	}
	for _, sel := range req.Heuristics {
		h, err := s.opts.Registry.Resolve(sel)
		if err != nil {
			writeSolveError(w, err)
			return
		}
		hs = append(hs, h)
	}

	secrets := req.Secrets
	if len(secrets) == 0 {
		pct := req.Percent
		if pct == 0 {
			pct = 100
		}
		if secrets, err = batch.Sample(sv.Vocabulary().Words(), pct); err != nil {
			writeSolveError(w, err)
			return
		}
	}

	runner := &batch.Runner{Solver: sv, Workers: s.opts.BatchWorkers, Metrics: s.opts.Metrics, KeepRuns: req.KeepRuns}
	rep, err := runner.Run(r.Context(), hs, secrets)
	if err != nil {
		log.Warn().Err(err).Msg("batch aborted")
		writeError(w, http.StatusServiceUnavailable, "aborted", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
