package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsolver/internal/feedback"
	"github.com/robalobadob/wordsolver/internal/words"
)

func vocab(t *testing.T, n int, list ...string) *words.Vocabulary {
	t.Helper()
	v, err := words.New(n, list)
	require.NoError(t, err)
	return v
}

func record(guess, secret string) feedback.Record {
	return feedback.Record{Guess: guess, Feedback: feedback.Compute(guess, secret)}
}

func TestCandidates_NoHistoryIsWholeVocabulary(t *testing.T) {
	v := vocab(t, 5, "crane", "trace", "react", "cater", "trice")
	f := New(v)
	assert.Equal(t, v.Words(), f.Candidates(nil))
	assert.Equal(t, 5, f.Count(nil))
}

func TestCandidates_Scenario(t *testing.T) {
	v := vocab(t, 5, "crane", "trace", "react", "cater", "trice")
	f := New(v)

	h := []feedback.Record{record("cater", "trace")}
	assert.Equal(t, []string{"trace", "react"}, f.Candidates(h))

	h = append(h, record("react", "trace"))
	assert.Equal(t, []string{"trace"}, f.Candidates(h))
}

// Soundness and monotonicity over every secret and a fixed guess sequence.
func TestCandidates_SoundAndMonotonic(t *testing.T) {
	v, err := words.Load(5)
	require.NoError(t, err)
	guesses := []string{"crane", "eerie", "sloth", "mummy", "lever"}

	for i := 0; i < v.Len(); i += 7 {
		secret := v.At(i)
		f := New(v)
		prev := v.Len()
		var h []feedback.Record
		for _, g := range guesses {
			h = append(h, record(g, secret))
			set := f.Set(h)
			require.True(t, set.Test(uint(i)), "secret %q dropped after %v", secret, h)
			require.LessOrEqual(t, int(set.Count()), prev)
			prev = int(set.Count())
		}
	}
}

// The bitset path agrees with direct oracle replay.
func TestCandidates_MatchesReplay(t *testing.T) {
	v := vocab(t, 5, "eerie", "arena", "llama", "hello", "speed", "abide", "erase", "eager", "renew", "sheep")
	f := New(v)
	for _, secret := range v.Words() {
		h := []feedback.Record{record("eerie", secret), record("speed", secret)}
		var want []string
		for _, w := range v.Words() {
			if Consistent(w, h) {
				want = append(want, w)
			}
		}
		assert.Equal(t, want, f.Candidates(h), "secret %s", secret)
		assert.Contains(t, want, secret)
	}
}

func TestCandidates_ContradictoryHistoryIsEmpty(t *testing.T) {
	v := vocab(t, 5, "crane", "trace", "react", "cater", "trice")
	f := New(v)
	allC := func() feedback.Vector {
		fb := make(feedback.Vector, 5)
		fb[0] = feedback.Correct
		return fb
	}
	h := []feedback.Record{
		{Guess: "crane", Feedback: allC()},
		{Guess: "trace", Feedback: allC()},
	}
	assert.Empty(t, f.Candidates(h))
	assert.Equal(t, 0, f.Count(h))
}

func TestCandidates_MalformedRecords(t *testing.T) {
	v := vocab(t, 5, "crane", "trace")
	f := New(v)

	short := []feedback.Record{{Guess: "cran", Feedback: feedback.Vector{0, 0, 0, 0}}}
	assert.Empty(t, f.Candidates(short))

	badFeedback := []feedback.Record{{Guess: "crane", Feedback: feedback.Vector{feedback.Correct}}}
	assert.Empty(t, f.Candidates(badFeedback))

	nonAlpha := []feedback.Record{{Guess: "cr4ne", Feedback: make(feedback.Vector, 5)}}
	assert.Empty(t, f.Candidates(nonAlpha))
	assert.False(t, Consistent("crane", nonAlpha))
}
