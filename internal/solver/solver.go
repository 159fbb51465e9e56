// Package solver runs the guess/feedback/filter cycle.
//
// A Solver is built once per vocabulary and policy and may be shared; every
// solve it starts (Solve, NewSession, Suggest) owns its own filter cache and
// used-word set, so independent solves can run concurrently.
package solver

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/wordsolver/internal/filter"
	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/words"
)

// Solver solves secrets drawn from one vocabulary.
type Solver struct {
	vocab *words.Vocabulary
	cfg   Config
}

// New validates cfg against vocab and fills in defaults.
func New(vocab *words.Vocabulary, cfg Config) (*Solver, error) {
	if vocab == nil || vocab.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, words.ErrEmpty)
	}
	if cfg.MaxGuesses < 0 {
		return nil, fmt.Errorf("%w: max guesses %d", ErrInvalidConfig, cfg.MaxGuesses)
	}
	if cfg.MaxGuesses == 0 {
		cfg.MaxGuesses = vocab.Length() + 1
	}
	if cfg.Opener != "" {
		cfg.Opener = words.Normalize(cfg.Opener)
		if !vocab.Contains(cfg.Opener) {
			return nil, fmt.Errorf("%w: opener %q is not in the %d-letter vocabulary",
				ErrInvalidConfig, cfg.Opener, vocab.Length())
		}
	}
	return &Solver{vocab: vocab, cfg: cfg}, nil
}

// Vocabulary returns the solver's vocabulary.
func (s *Solver) Vocabulary() *words.Vocabulary { return s.vocab }

// Config returns the effective configuration.
func (s *Solver) Config() Config { return s.cfg }

// Solve runs h against secret until it is solved or the budget is spent.
// Exhaustion is reported through Result.Status, not as an error.
func (s *Solver) Solve(h heuristic.Heuristic, secret string) (Result, error) {
	sess, err := s.NewSession(h, secret)
	if err != nil {
		return Result{}, err
	}
	for !sess.Status().Terminal() {
		if _, err := sess.Step(); err != nil {
			return sess.Result(), err
		}
	}
	return sess.Result(), nil
}

// checkSecret normalizes secret and enforces the length precondition.
func (s *Solver) checkSecret(secret string) (string, error) {
	w := words.Normalize(secret)
	switch {
	case w == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidSecret)
	case len(w) != s.vocab.Length():
		return "", fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidSecret, w, len(w), s.vocab.Length())
	case !words.IsAlpha(w):
		return "", fmt.Errorf("%w: %q is not a-z", ErrInvalidSecret, w)
	}
	return w, nil
}

// pool returns the guessable words under the configured policy; nil means
// the candidates.
func (s *Solver) pool() []string {
	if s.cfg.HardMode {
		return nil
	}
	return s.vocab.Words()
}

// Suggestion is the assisted-mode answer for an externally observed history.
type Suggestion struct {
	Guess      string   `json:"guess"`
	Remaining  int      `json:"remaining"`
	Candidates []string `json:"candidates,omitempty"`
	Solved     bool     `json:"solved"`
}

// maxListed caps the candidates echoed back in a Suggestion.
const maxListed = 20

// Suggest returns the next guess h would make given history, which was
// observed outside the solver (e.g. a game played by hand).
func (s *Solver) Suggest(h heuristic.Heuristic, history []GuessRecord) (Suggestion, error) {
	if h == nil {
		return Suggestion{}, fmt.Errorf("%w: nil", ErrInvalidHeuristic)
	}
	norm := make([]GuessRecord, len(history))
	used := mapset.NewThreadUnsafeSet[string]()
	for i, rec := range history {
		norm[i] = GuessRecord{Guess: words.Normalize(rec.Guess), Feedback: rec.Feedback}
		used.Add(norm[i].Guess)
	}
	if n := len(norm); n > 0 && norm[n-1].Feedback.Solved() {
		return Suggestion{Guess: norm[n-1].Guess, Remaining: 1, Solved: true}, nil
	}

	f := filter.New(s.vocab)
	cands := f.Candidates(norm)
	if len(cands) == 0 {
		return Suggestion{}, fmt.Errorf("suggest after %d guesses: %w", len(norm), ErrEmptyCandidateSet)
	}
	in := heuristic.Input{Candidates: cands, Pool: s.pool(), History: norm, Used: used}
	guess, err := s.choose(h, in)
	if err != nil {
		return Suggestion{}, err
	}
	out := Suggestion{Guess: guess, Remaining: len(cands)}
	if len(cands) <= maxListed {
		out.Candidates = cands
	}
	return out, nil
}

// choose applies the opener policy on the first guess, then h.
func (s *Solver) choose(h heuristic.Heuristic, in heuristic.Input) (string, error) {
	if len(in.History) == 0 {
		if s.cfg.Opener != "" {
			return s.cfg.Opener, nil
		}
		if s.cfg.OpenerHeuristic != nil {
			h = s.cfg.OpenerHeuristic
		}
	}
	guess, err := h.Choose(in)
	if err != nil {
		return "", fmt.Errorf("heuristic %s: %w", h.Name(), err)
	}
	if in.Used != nil && in.Used.Contains(guess) {
		return "", fmt.Errorf("heuristic %s repeated %q", h.Name(), guess)
	}
	if len(guess) != s.vocab.Length() || !words.IsAlpha(guess) {
		return "", fmt.Errorf("heuristic %s returned %q", h.Name(), guess)
	}
	return guess, nil
}
