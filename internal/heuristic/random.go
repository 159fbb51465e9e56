package heuristic

import "math/rand/v2"

// Random picks uniformly among the unused candidates. The generator is
// derived from the seed and the history length on every call, so the same
// seed and history always give the same word.
type Random struct {
	Seed uint64
}

// Name implements Heuristic.
func (Random) Name() string { return "random" }

// Choose implements Heuristic.
func (r Random) Choose(in Input) (string, error) {
	if len(in.Candidates) == 0 {
		return "", ErrEmptyCandidateSet
	}
	pool := eligible(Input{Candidates: in.Candidates, Used: in.Used})
	if len(pool) == 0 {
		return "", ErrEmptyCandidateSet
	}
	rng := rand.New(rand.NewPCG(r.Seed, uint64(len(in.History))<<32|uint64(len(pool))))
	return pool[rng.IntN(len(pool))], nil
}
