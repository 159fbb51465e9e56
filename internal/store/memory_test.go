package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/words"
)

func newEntry(t *testing.T) *Entry {
	t.Helper()
	v, err := words.New(5, []string{"crane", "trace", "react"})
	require.NoError(t, err)
	s, err := solver.New(v, solver.DefaultConfig())
	require.NoError(t, err)
	sess, err := s.NewSession(heuristic.LetterFrequency(), "trace")
	require.NoError(t, err)
	return NewEntry(sess, 5)
}

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	e := newEntry(t)
	assert.Equal(t, "letter_frequency", e.Heuristic)

	require.NoError(t, st.Save(ctx, e))
	got, err := st.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Same(t, e, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, e.ID))
	_, err = st.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	old, fresh := newEntry(t), newEntry(t)
	require.NoError(t, st.Save(ctx, old))
	old.Touched = time.Now().Add(-time.Hour)
	require.NoError(t, st.Save(ctx, fresh))

	assert.Equal(t, 1, st.Sweep(ctx, time.Now().Add(-time.Minute)))
	_, err := st.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	entries := make([]*Entry, 16)
	for i := range entries {
		entries[i] = newEntry(t)
	}
	var wg sync.WaitGroup
	for _, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Save(ctx, e)
			_, _ = st.Get(ctx, e.ID)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, st.Len())
}
