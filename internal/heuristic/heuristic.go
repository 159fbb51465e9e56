// Package heuristic ranks the remaining words and picks the next guess.
//
// Every strategy implements Heuristic. Strategies are configured once (see
// Registry) and then behave as pure functions of their Input: they hold no
// state that changes between calls, and they never see the secret.
//
// Ranking is deterministic: higher score first, then words that are still
// candidates, then lexicographic order.
package heuristic

import (
	"errors"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/wordsolver/internal/feedback"
)

var (
	// ErrEmptyCandidateSet means no word is consistent with the history.
	ErrEmptyCandidateSet = errors.New("no candidate words remain")

	// ErrInvalidHeuristic means a name or index did not resolve to a strategy.
	ErrInvalidHeuristic = errors.New("unknown heuristic")
)

// Input is everything a strategy may look at when choosing a guess.
type Input struct {
	// Candidates are the words consistent with History, in vocabulary order.
	Candidates []string
	// Pool is the set of words that may be guessed. Nil means Candidates.
	Pool []string
	// History is the guesses made so far with their feedback.
	History []feedback.Record
	// Used holds every word already guessed. May be nil.
	Used mapset.Set[string]
}

// Heuristic chooses the next guess.
type Heuristic interface {
	Name() string
	// Choose returns a word from the pool that is not in Used.
	// It returns ErrEmptyCandidateSet when Candidates is empty.
	Choose(in Input) (string, error)
}

// Func adapts a scoring function into a Heuristic. The score of every
// eligible pool word is computed against the same Input.
type Func struct {
	ID    string
	Score func(in Input) func(w string) float64
}

// Name implements Heuristic.
func (f Func) Name() string { return f.ID }

// Choose implements Heuristic.
//
// When the pool reaches beyond the candidates, a non-candidate wins only if it
// splits the candidates into more feedback buckets than the best candidate
// does, so every probe shrinks the candidate set. With two candidates or fewer
// only candidates are considered.
func (f Func) Choose(in Input) (string, error) {
	if len(in.Candidates) == 0 {
		return "", ErrEmptyCandidateSet
	}
	score := f.Score(in)
	if in.Pool == nil || len(in.Candidates) <= 2 {
		return Best(candidatesOnly(in), score)
	}
	best, err := Best(in, score)
	if err != nil {
		return "", err
	}
	if _, ok := candidateSet(in)[best]; ok {
		return best, nil
	}
	fallback, err := Best(candidatesOnly(in), score)
	if err != nil {
		return best, nil
	}
	if buckets(best, in.Candidates) > buckets(fallback, in.Candidates) {
		return best, nil
	}
	return fallback, nil
}

// candidatesOnly drops the pool so that only candidates are eligible.
func candidatesOnly(in Input) Input {
	return Input{Candidates: in.Candidates, History: in.History, Used: in.Used}
}

// Scored is a pool word with its score.
type Scored struct {
	Word      string  `json:"word"`
	Score     float64 `json:"score"`
	Candidate bool    `json:"candidate"`
}

// Rank scores every eligible pool word and returns them best first.
func Rank(in Input, score func(w string) float64) []Scored {
	pool := eligible(in)
	cand := candidateSet(in)
	out := make([]Scored, 0, len(pool))
	for _, w := range pool {
		_, isCand := cand[w]
		out = append(out, Scored{Word: w, Score: score(w), Candidate: isCand})
	}
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}

// Best returns the top-ranked eligible pool word.
func Best(in Input, score func(w string) float64) (string, error) {
	pool := eligible(in)
	if len(pool) == 0 {
		return "", ErrEmptyCandidateSet
	}
	cand := candidateSet(in)
	var best Scored
	for i, w := range pool {
		_, isCand := cand[w]
		s := Scored{Word: w, Score: score(w), Candidate: isCand}
		if i == 0 || better(s, best) {
			best = s
		}
	}
	return best.Word, nil
}

func better(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Candidate != b.Candidate {
		return a.Candidate
	}
	return a.Word < b.Word
}

// eligible is the pool without used words.
func eligible(in Input) []string {
	pool := in.Pool
	if pool == nil {
		pool = in.Candidates
	}
	if in.Used == nil || in.Used.Cardinality() == 0 {
		return pool
	}
	out := make([]string, 0, len(pool))
	for _, w := range pool {
		if !in.Used.Contains(w) {
			out = append(out, w)
		}
	}
	return out
}

func candidateSet(in Input) map[string]struct{} {
	m := make(map[string]struct{}, len(in.Candidates))
	for _, w := range in.Candidates {
		m[w] = struct{}{}
	}
	return m
}

// guessedLetters returns the letters that appeared in any earlier guess.
func guessedLetters(history []feedback.Record) [26]bool {
	var seen [26]bool
	for _, rec := range history {
		for i := 0; i < len(rec.Guess); i++ {
			if c := rec.Guess[i]; c >= 'a' && c <= 'z' {
				seen[c-'a'] = true
			}
		}
	}
	return seen
}
