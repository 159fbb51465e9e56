// Package batch runs many independent solves in parallel and aggregates
// their guess counts per heuristic.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/metrics"
	"github.com/robalobadob/wordsolver/internal/solver"
)

// ErrPercent means a sample percentage outside 0..100.
var ErrPercent = errors.New("percentage must be between 0 and 100")

// Sample returns the first ⌊len(list)·percent/100⌋ words of list.
func Sample(list []string, percent float64) ([]string, error) {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: %v", ErrPercent, percent)
	}
	n := int(float64(len(list)) * percent / 100)
	out := make([]string, n)
	copy(out, list[:n])
	return out, nil
}

// Run is one solve in a batch.
type Run struct {
	Heuristic string        `json:"heuristic"`
	Secret    string        `json:"secret"`
	Result    solver.Result `json:"result"`
	Err       string        `json:"error,omitempty"`
}

// Summary aggregates the runs of one heuristic. Mean, Min, Max and StdDev
// are over solved runs only; MeanUsed averages the guesses of every run that
// finished, exhausted ones included.
type Summary struct {
	Heuristic string  `json:"heuristic"`
	Runs      int     `json:"runs"`
	Solved    int     `json:"solved"`
	Exhausted int     `json:"exhausted"`
	Failed    int     `json:"failed"`
	Mean      float64 `json:"mean"`
	Min       int     `json:"min"`
	Max       int     `json:"max"`
	StdDev    float64 `json:"stdDev"`
	MeanUsed  float64 `json:"meanUsed"`
}

// Report is the outcome of Runner.Run.
type Report struct {
	ID        string        `json:"id"`
	Summaries []Summary     `json:"summaries"`
	Runs      []Run         `json:"runs,omitempty"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

// Runner solves every (heuristic, secret) pair with one shared Solver.
type Runner struct {
	Solver   *solver.Solver
	Workers  int              // <= 0 means GOMAXPROCS
	Metrics  *metrics.Metrics // optional
	KeepRuns bool             // include every Run in the report
}

// Run solves each secret with each heuristic. Solve errors are counted as
// failed runs; only cancellation of ctx aborts the batch.
func (r *Runner) Run(ctx context.Context, hs []heuristic.Heuristic, secrets []string) (Report, error) {
	if r.Solver == nil {
		return Report{}, errors.New("batch: nil solver")
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	id := uuid.NewString()
	start := time.Now()

	runs := make([]Run, len(hs)*len(secrets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for hi, h := range hs {
		for si, secret := range secrets {
			i := hi*len(secrets) + si
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := r.Solver.Solve(h, secret)
				r.Metrics.Observe(h.Name(), res, err)
				runs[i] = Run{Heuristic: h.Name(), Secret: secret, Result: res}
				if err != nil {
					runs[i].Err = err.Error()
					log.Warn().Err(err).Str("batch", id).Str("heuristic", h.Name()).
						Str("secret", secret).Msg("solve failed")
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("batch %s: %w", id, err)
	}

	rep := Report{ID: id, Elapsed: time.Since(start)}
	for hi, h := range hs {
		rep.Summaries = append(rep.Summaries, Summarize(h.Name(), runs[hi*len(secrets):(hi+1)*len(secrets)]))
	}
	if r.KeepRuns {
		rep.Runs = runs
	}
	log.Info().Str("batch", id).Int("heuristics", len(hs)).Int("secrets", len(secrets)).
		Dur("elapsed", rep.Elapsed).Msg("batch finished")
	return rep, nil
}

// Summarize aggregates runs of a single heuristic.
func Summarize(name string, runs []Run) Summary {
	s := Summary{Heuristic: name, Runs: len(runs)}
	var solved []float64
	used, finished := 0, 0
	for _, run := range runs {
		switch {
		case run.Err != "":
			s.Failed++
			continue
		case run.Result.Status == solver.StatusSolved:
			s.Solved++
			solved = append(solved, float64(run.Result.Guesses))
		case run.Result.Status == solver.StatusExhausted:
			s.Exhausted++
		}
		used += run.Result.Guesses
		finished++
	}
	if finished > 0 {
		s.MeanUsed = float64(used) / float64(finished)
	}
	if len(solved) == 0 {
		return s
	}
	s.Min, s.Max = int(solved[0]), int(solved[0])
	var sum float64
	for _, g := range solved {
		sum += g
		s.Min = min(s.Min, int(g))
		s.Max = max(s.Max, int(g))
	}
	s.Mean = sum / float64(len(solved))
	var sq float64
	for _, g := range solved {
		sq += (g - s.Mean) * (g - s.Mean)
	}
	s.StdDev = math.Sqrt(sq / float64(len(solved)))
	return s
}
