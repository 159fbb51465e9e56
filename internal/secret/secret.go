// Package secret chooses the word a solve is played against.
package secret

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/wordsolver/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index for key using HMAC(salt, key) % n.
func Index(salt, key string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Pick returns the vocabulary word selected by (salt, key). The same inputs
// and vocabulary always give the same word.
func Pick(v *words.Vocabulary, salt, key string) string {
	return v.At(Index(salt, key, v.Len()))
}

// Daily picks the word for the UTC date of t.
func Daily(v *words.Vocabulary, salt string, t time.Time) string {
	return Pick(v, salt, DateKey(t))
}

// Random returns a word chosen uniformly by a generator seeded with seed.
func Random(v *words.Vocabulary, seed uint64) string {
	rng := rand.New(rand.NewPCG(seed, uint64(v.Len())))
	return v.At(rng.IntN(v.Len()))
}
