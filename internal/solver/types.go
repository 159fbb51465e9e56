// internal/solver/types.go
//
// Core type definitions for the solve loop.
// Defines:
//   - Status: where a solve is in its lifecycle (guessing/solved/exhausted).
//   - Config: per-solver policy (guess budget, hard mode, opener).
//   - Result: the terminal outcome of one solve.

package solver

import (
	"errors"

	"github.com/robalobadob/wordsolver/internal/feedback"
	"github.com/robalobadob/wordsolver/internal/heuristic"
)

// Status is the state of a solve.
//   - "guessing":  more guesses may be made.
//   - "solved":    the last guess received all-Correct feedback.
//   - "exhausted": the guess budget ran out without solving.
type Status string

const (
	StatusGuessing  Status = "guessing"
	StatusSolved    Status = "solved"
	StatusExhausted Status = "exhausted"
)

// Terminal reports whether no further guess can be made.
func (s Status) Terminal() bool { return s == StatusSolved || s == StatusExhausted }

// GuessRecord is one guess with the feedback it received.
type GuessRecord = feedback.Record

var (
	// ErrInvalidSecret means the secret is missing, has the wrong length, or
	// is not made of a–z letters.
	ErrInvalidSecret = errors.New("invalid secret")

	// ErrInvalidConfig means the solver configuration cannot be used with
	// the vocabulary.
	ErrInvalidConfig = errors.New("invalid solver config")

	// ErrFinished means Step was called after the session reached a terminal state.
	ErrFinished = errors.New("solve already finished")

	// ErrInvalidHeuristic and ErrEmptyCandidateSet are raised by the scorer.
	ErrInvalidHeuristic  = heuristic.ErrInvalidHeuristic
	ErrEmptyCandidateSet = heuristic.ErrEmptyCandidateSet
)

// Config holds solve policy. The zero value is not the default; start from
// DefaultConfig.
type Config struct {
	// MaxGuesses is the guess budget. Zero means word length + 1.
	MaxGuesses int
	// HardMode restricts every guess to the current candidates. When false,
	// any unused vocabulary word may be guessed as a probe.
	HardMode bool
	// Opener, if set, is always the first guess. It must be in the vocabulary.
	Opener string
	// OpenerHeuristic, if set and Opener is empty, picks the first guess.
	OpenerHeuristic heuristic.Heuristic
}

// DefaultConfig returns hard mode with the default budget and no opener.
func DefaultConfig() Config {
	return Config{HardMode: true}
}

// Result is the outcome of a finished solve.
type Result struct {
	Status  Status        `json:"status"`
	Guesses int           `json:"guesses"`
	History []GuessRecord `json:"history"`
}

// Solved reports whether the secret was found.
func (r Result) Solved() bool { return r.Status == StatusSolved }
