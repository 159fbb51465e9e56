package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsolver/internal/feedback"
	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/words"
)

func TestParseObserved(t *testing.T) {
	got, err := parseObserved([]string{"CRANE=PCCAC", "trice=ggygg"}, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "crane", got[0].Guess)
	assert.Equal(t, feedback.Compute("crane", "trace"), got[0].Feedback)
	assert.Equal(t, "CCPCC", got[1].Feedback.String())

	_, err = parseObserved([]string{"crane"}, 5)
	assert.Error(t, err)
	_, err = parseObserved([]string{"crane=PCC"}, 5)
	assert.Error(t, err)
}

func TestSolverConfig(t *testing.T) {
	cfg.Solver.OpenerHeuristic = "minimax"
	cfg.Solver.Opener = "CRANE"
	cfg.Solver.HardMode = true
	t.Cleanup(func() { cfg.Solver.OpenerHeuristic, cfg.Solver.Opener = "", "" })

	sc, err := solverConfig(registry())
	require.NoError(t, err)
	assert.Equal(t, "crane", sc.Opener)
	assert.Equal(t, "minimax", sc.OpenerHeuristic.Name())
	assert.True(t, sc.HardMode)

	cfg.Solver.OpenerHeuristic = "nope"
	_, err = solverConfig(registry())
	assert.Error(t, err)
}

type brokenHeuristic struct{}

func (brokenHeuristic) Name() string { return "broken" }

func (brokenHeuristic) Choose(heuristic.Input) (string, error) {
	return "", errors.New("out of ideas")
}

func TestSolveEach_ContinuesPastFailures(t *testing.T) {
	v, err := words.New(5, []string{"crane", "trace", "react", "cater", "trice"})
	require.NoError(t, err)
	s, err := solver.New(v, solver.DefaultConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	err = solveEach(&out, s, []heuristic.Heuristic{brokenHeuristic{}, heuristic.LetterFrequency()}, "trace", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 heuristics failed: broken")
	assert.Contains(t, out.String(), "out of ideas")
	assert.Contains(t, out.String(), "letter_frequency\n")
	assert.Contains(t, out.String(), "solved in 3 guesses")

	out.Reset()
	require.NoError(t, solveEach(&out, s, []heuristic.Heuristic{heuristic.LetterFrequency()}, "trace", true))
}
