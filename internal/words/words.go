// internal/words/words.go
//
// Vocabulary management for the solver.
//
// Responsibilities:
//   - Hold one fixed-length, ordered, duplicate-free word list (Vocabulary).
//   - Normalize raw lists: trim, lowercase, keep only a–z words of the length.
//   - Load lists from environment-provided files or embedded defaults (load.go).
//
// A Vocabulary is immutable once built and safe to share between goroutines;
// concurrent solves read it without coordination.

package words

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordsolver/internal/feedback"
)

// ErrEmpty is returned when no usable word of the requested length remains.
var ErrEmpty = errors.New("words: vocabulary is empty")

// Vocabulary is an ordered set of lowercase words of a single length.
type Vocabulary struct {
	length int
	list   []string
	index  map[string]int
}

// New builds a Vocabulary of the given length from list.
// Entries are normalized; entries of another length or with non a–z
// characters are dropped, as are duplicates (first occurrence wins).
func New(length int, list []string) (*Vocabulary, error) {
	if err := ValidLength(length); err != nil {
		return nil, err
	}
	v := &Vocabulary{
		length: length,
		list:   make([]string, 0, len(list)),
		index:  make(map[string]int, len(list)),
	}
	for _, raw := range list {
		w := Normalize(raw)
		if len(w) != length || !IsAlpha(w) {
			continue
		}
		if _, dup := v.index[w]; dup {
			continue
		}
		v.index[w] = len(v.list)
		v.list = append(v.list, w)
	}
	if len(v.list) == 0 {
		return nil, fmt.Errorf("%w (length %d)", ErrEmpty, length)
	}
	return v, nil
}

// ValidLength reports whether n is a supported word length.
func ValidLength(n int) error {
	if n < 1 || n > feedback.MaxLength {
		return fmt.Errorf("words: unsupported word length %d (1..%d)", n, feedback.MaxLength)
	}
	return nil
}

// Length is the fixed word length.
func (v *Vocabulary) Length() int { return v.length }

// Len is the number of words.
func (v *Vocabulary) Len() int { return len(v.list) }

// At returns the i-th word in vocabulary order.
func (v *Vocabulary) At(i int) string { return v.list[i] }

// Words returns a copy of the list in vocabulary order.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// Index returns the position of w, or -1 if absent.
func (v *Vocabulary) Index(w string) int {
	if i, ok := v.index[Normalize(w)]; ok {
		return i
	}
	return -1
}

// Contains reports whether w is in the vocabulary.
func (v *Vocabulary) Contains(w string) bool { return v.Index(w) >= 0 }

// Normalize trims whitespace and lowercases w.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// IsAlpha reports whether s is non-empty and all lowercase ASCII letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
