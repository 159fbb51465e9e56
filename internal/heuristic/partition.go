package heuristic

import (
	"math"
	"sort"

	"github.com/robalobadob/wordsolver/internal/feedback"
)

// DefaultBudget is the number of guesses the partition heuristics evaluate
// when no budget is configured.
const DefaultBudget = 200

// partitionKind selects how a feedback partition is turned into a score.
type partitionKind int

const (
	kindEntropy partitionKind = iota
	kindMinimax
	kindExpected
)

// Partition scores a guess by how it would split the candidates: for each
// candidate taken as a hypothetical secret, the feedback the guess would
// receive. Cost is O(evaluated guesses × candidates), so only the top
// `budget` pool words by letter frequency are evaluated, plus the top `budget`
// candidates when the pool reaches beyond them.
type Partition struct {
	id     string
	kind   partitionKind
	budget int
}

// Entropy maximizes the Shannon entropy of the feedback partition, i.e. the
// expected information gained by the guess.
func Entropy(budget int) *Partition {
	return &Partition{id: "entropy", kind: kindEntropy, budget: budget}
}

// Minimax minimizes the size of the largest feedback bucket.
func Minimax(budget int) *Partition {
	return &Partition{id: "minimax", kind: kindMinimax, budget: budget}
}

// ExpectedSize minimizes the expected number of candidates left after the guess.
func ExpectedSize(budget int) *Partition {
	return &Partition{id: "expected_size", kind: kindExpected, budget: budget}
}

// Name implements Heuristic.
func (p *Partition) Name() string { return p.id }

// Choose implements Heuristic.
func (p *Partition) Choose(in Input) (string, error) {
	if len(in.Candidates) == 0 {
		return "", ErrEmptyCandidateSet
	}
	if len(in.Candidates) <= 2 {
		// Any split of two words is no better than guessing one of them.
		return LetterFrequency().Choose(candidatesOnly(in))
	}
	shortlist := p.shortlist(in)
	if len(shortlist) == 0 {
		return "", ErrEmptyCandidateSet
	}
	restricted := in
	restricted.Pool = shortlist
	return Best(restricted, func(w string) float64 { return p.score(w, in.Candidates) })
}

// score returns the partition score of guess against candidates.
func (p *Partition) score(guess string, candidates []string) float64 {
	buckets := make(map[uint64]int, 64)
	for _, c := range candidates {
		buckets[feedback.KeyOf(guess, c)]++
	}
	sizes := make([]int, 0, len(buckets))
	for _, n := range buckets {
		sizes = append(sizes, n)
	}
	// Summation order fixed so equal partitions score bit-identically.
	sort.Ints(sizes)

	total := float64(len(candidates))
	switch p.kind {
	case kindMinimax:
		return -float64(sizes[len(sizes)-1])
	case kindExpected:
		var sq float64
		for _, n := range sizes {
			sq += float64(n * n)
		}
		return -sq / total
	default:
		var s float64
		for _, n := range sizes {
			s += float64(n) * math.Log2(float64(n))
		}
		return math.Log2(total) - s/total
	}
}

// buckets counts the distinct feedbacks guess would receive over candidates.
func buckets(guess string, candidates []string) int {
	seen := make(map[uint64]struct{}, len(candidates))
	for _, c := range candidates {
		seen[feedback.KeyOf(guess, c)] = struct{}{}
	}
	return len(seen)
}

// shortlist returns the eligible pool words the partition is evaluated for:
// the top budget by letter frequency and, when the pool reaches beyond the
// candidates, the top budget unused candidates as well.
func (p *Partition) shortlist(in Input) []string {
	budget := p.budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	out := top(in, budget)
	if in.Pool == nil || len(out) == len(eligible(in)) {
		return out
	}
	listed := make(map[string]struct{}, len(out))
	for _, w := range out {
		listed[w] = struct{}{}
	}
	for _, w := range top(candidatesOnly(in), budget) {
		if _, ok := listed[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// top returns at most n eligible pool words, best by letter frequency first.
func top(in Input, n int) []string {
	pool := eligible(in)
	if len(pool) <= n {
		return pool
	}
	counts, _ := letterCounts(in.Candidates)
	ranked := Rank(in, func(w string) float64 { return frequencyScore(&counts, w) })
	out := make([]string, 0, n)
	for _, s := range ranked[:n] {
		out = append(out, s.Word)
	}
	return out
}
