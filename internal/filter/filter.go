// Package filter narrows a vocabulary to the words consistent with the
// feedback observed so far.
//
// A word w is a candidate iff, for every record (g, fb) in the history,
// feedback.Compute(g, w) equals fb. Replaying the oracle this way is sound and
// complete for repeated letters; per-letter green/yellow/gray shortcuts are not.
//
// Each Filter caches, per guess, the partition of its vocabulary by feedback
// key as bitsets, so repeated queries within one solve only intersect sets.
// A Filter is not safe for concurrent use; give each solve its own.
package filter

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordsolver/internal/feedback"
	"github.com/robalobadob/wordsolver/internal/words"
)

// Filter computes candidate sets over one vocabulary.
type Filter struct {
	vocab *words.Vocabulary
	parts map[string]map[uint64]*bitset.BitSet // guess -> feedback key -> members
}

// New returns a Filter over v.
func New(v *words.Vocabulary) *Filter {
	return &Filter{vocab: v, parts: make(map[string]map[uint64]*bitset.BitSet)}
}

// Vocabulary returns the vocabulary being filtered.
func (f *Filter) Vocabulary() *words.Vocabulary { return f.vocab }

// Set returns the candidate set for history as a bitset over vocabulary
// indices. The returned set belongs to the caller.
func (f *Filter) Set(history []feedback.Record) *bitset.BitSet {
	n := uint(f.vocab.Len())
	set := bitset.New(n)
	set.FlipRange(0, n)
	for _, rec := range history {
		f.Narrow(set, rec)
		if set.None() {
			break
		}
	}
	return set
}

// Narrow removes from set every word inconsistent with rec.
func (f *Filter) Narrow(set *bitset.BitSet, rec feedback.Record) {
	members := f.partition(rec.Guess)[rec.Feedback.Key()]
	if members == nil || len(rec.Feedback) != f.vocab.Length() {
		set.ClearAll()
		return
	}
	set.InPlaceIntersection(members)
}

// Candidates returns the consistent words in vocabulary order.
func (f *Filter) Candidates(history []feedback.Record) []string {
	return f.Words(f.Set(history))
}

// Count returns the number of consistent words.
func (f *Filter) Count(history []feedback.Record) int {
	return int(f.Set(history).Count())
}

// Words maps a candidate bitset back to words in vocabulary order.
func (f *Filter) Words(set *bitset.BitSet) []string {
	out := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, f.vocab.At(int(i)))
	}
	return out
}

// partition returns (and caches) the vocabulary split by the feedback that
// guess would receive against each word. Guesses that cannot be scored
// against this vocabulary get an empty partition.
func (f *Filter) partition(guess string) map[uint64]*bitset.BitSet {
	if p, ok := f.parts[guess]; ok {
		return p
	}
	p := make(map[uint64]*bitset.BitSet)
	if len(guess) == f.vocab.Length() && words.IsAlpha(guess) {
		n := uint(f.vocab.Len())
		for i := 0; i < f.vocab.Len(); i++ {
			k := feedback.KeyOf(guess, f.vocab.At(i))
			b, ok := p[k]
			if !ok {
				b = bitset.New(n)
				p[k] = b
			}
			b.Set(uint(i))
		}
	}
	f.parts[guess] = p
	return p
}

// Consistent reports whether w could be the secret given history.
func Consistent(w string, history []feedback.Record) bool {
	for _, rec := range history {
		if len(rec.Guess) != len(w) || !words.IsAlpha(rec.Guess) || !words.IsAlpha(w) {
			return false
		}
		if !feedback.Compute(rec.Guess, w).Equal(rec.Feedback) {
			return false
		}
	}
	return true
}
