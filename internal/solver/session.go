// internal/solver/session.go
//
// Session is one solve driven a guess at a time.
// Responsibilities:
//   - Ask the filter for the current candidates.
//   - Ask the heuristic (or the opener policy) for a guess.
//   - Score the guess against the secret and record it.
//   - Track state transitions: guessing → solved | exhausted.
//
// A Session is not safe for concurrent use.

package solver

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsolver/internal/feedback"
	"github.com/robalobadob/wordsolver/internal/filter"
	"github.com/robalobadob/wordsolver/internal/heuristic"
)

// Session holds the state of a single solve.
type Session struct {
	s       *Solver
	h       heuristic.Heuristic
	secret  string
	filter  *filter.Filter
	set     *bitset.BitSet // current candidates
	pool    []string       // guessable words; nil means candidates
	used    mapset.Set[string]
	history []GuessRecord
	status  Status
}

// NewSession starts a solve of secret with h.
func (s *Solver) NewSession(h heuristic.Heuristic, secret string) (*Session, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidHeuristic)
	}
	w, err := s.checkSecret(secret)
	if err != nil {
		return nil, err
	}
	f := filter.New(s.vocab)
	return &Session{
		s:      s,
		h:      h,
		secret: w,
		filter: f,
		set:    f.Set(nil),
		pool:   s.pool(),
		used:   mapset.NewThreadUnsafeSet[string](),
		status: StatusGuessing,
	}, nil
}

// Heuristic returns the strategy driving the session.
func (x *Session) Heuristic() heuristic.Heuristic { return x.h }

// Status reports where the solve is.
func (x *Session) Status() Status { return x.status }

// Remaining is the number of candidates consistent with the history so far.
func (x *Session) Remaining() int { return int(x.set.Count()) }

// History returns a copy of the guesses made so far.
func (x *Session) History() []GuessRecord {
	out := make([]GuessRecord, len(x.history))
	copy(out, x.history)
	return out
}

// Result reports the session outcome so far.
func (x *Session) Result() Result {
	return Result{Status: x.status, Guesses: len(x.history), History: x.History()}
}

// Step makes one guess. It returns ErrFinished once the session is solved or
// exhausted, and ErrEmptyCandidateSet when no word fits the history (the
// secret is outside the vocabulary).
func (x *Session) Step() (GuessRecord, error) {
	if x.status.Terminal() {
		return GuessRecord{}, ErrFinished
	}
	cands := x.filter.Words(x.set)
	if len(cands) == 0 {
		return GuessRecord{}, fmt.Errorf("after %d guesses: %w", len(x.history), ErrEmptyCandidateSet)
	}
	guess, err := x.s.choose(x.h, heuristic.Input{
		Candidates: cands,
		Pool:       x.pool,
		History:    x.history,
		Used:       x.used,
	})
	if err != nil {
		return GuessRecord{}, err
	}

	rec := GuessRecord{Guess: guess, Feedback: feedback.Compute(guess, x.secret)}
	x.history = append(x.history, rec)
	x.used.Add(guess)
	x.filter.Narrow(x.set, rec)

	switch {
	case rec.Feedback.Solved():
		x.status = StatusSolved
	case len(x.history) >= x.s.cfg.MaxGuesses:
		x.status = StatusExhausted
	}

	log.Debug().
		Str("heuristic", x.h.Name()).
		Int("turn", len(x.history)).
		Str("guess", guess).
		Str("feedback", rec.Feedback.String()).
		Int("remaining", x.Remaining()).
		Str("status", string(x.status)).
		Msg("solver step")
	return rec, nil
}
