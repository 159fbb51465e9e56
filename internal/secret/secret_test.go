package secret

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsolver/internal/words"
)

func TestDateKey_UTC(t *testing.T) {
	loc := time.FixedZone("x", -5*3600)
	assert.Equal(t, "2024-03-02", DateKey(time.Date(2024, 3, 1, 22, 0, 0, 0, loc)))
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index("salt", "k", 0))
	for _, key := range []string{"a", "b", "2024-01-01"} {
		i := Index("salt", key, 7)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 7)
		assert.Equal(t, i, Index("salt", key, 7))
	}
}

func TestPick_Deterministic(t *testing.T) {
	v, err := words.Load(5)
	require.NoError(t, err)

	day := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := Daily(v, "pepper", day)
	assert.True(t, v.Contains(w))
	assert.Equal(t, w, Pick(v, "pepper", "2025-06-01"))

	r := Random(v, 99)
	assert.True(t, v.Contains(r))
	assert.Equal(t, r, Random(v, 99))
}
