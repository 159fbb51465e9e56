// internal/feedback/symbol.go
//
// Per-letter feedback types shared by every layer of the solver.
// Defines:
//   - Symbol: result for one letter position (absent/present/correct).
//   - Vector: ordered symbols for a whole guess.
//
// Display encodings (emoji, colours, the "hit/present/miss" strings) live in
// the render package; this package only knows the three symbols.

package feedback

import (
	"fmt"
	"strings"
)

// Symbol is the evaluation result for a single letter position.
type Symbol uint8

const (
	Absent  Symbol = iota // letter not in the secret (or all instances used up)
	Present               // letter in the secret, different position
	Correct               // letter in the correct position
)

// String returns the single-letter code used in logs and tests: A, P or C.
func (s Symbol) String() string {
	switch s {
	case Correct:
		return "C"
	case Present:
		return "P"
	default:
		return "A"
	}
}

// Vector holds one Symbol per letter of a guess.
type Vector []Symbol

// Solved reports whether every position is Correct.
func (v Vector) Solved() bool {
	for _, s := range v {
		if s != Correct {
			return false
		}
	}
	return len(v) > 0
}

// Equal reports whether v and o have the same length and symbols.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Key packs the vector into a base-3 number. Two vectors of the same length
// have the same key iff they are equal, so keys index partitions.
func (v Vector) Key() uint64 {
	var k uint64
	for _, s := range v {
		k = k*3 + uint64(s)
	}
	return k
}

// String renders the vector as its letter codes, e.g. "CPAAC".
func (v Vector) String() string {
	var b strings.Builder
	b.Grow(len(v))
	for _, s := range v {
		b.WriteString(s.String())
	}
	return b.String()
}

// MarshalText encodes the vector as its letter codes, so JSON carries
// "CPAAC" rather than raw bytes.
func (v Vector) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses letter codes (C, P, A; any case).
func (v *Vector) UnmarshalText(b []byte) error {
	out := make(Vector, len(b))
	for i, c := range b {
		switch c {
		case 'C', 'c':
			out[i] = Correct
		case 'P', 'p':
			out[i] = Present
		case 'A', 'a':
			out[i] = Absent
		default:
			return fmt.Errorf("feedback: invalid symbol %q at %d", c, i)
		}
	}
	*v = out
	return nil
}

// AllCorrect returns the solved vector for a word of length n.
func AllCorrect(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = Correct
	}
	return v
}

// Record pairs a guess with the feedback it received.
type Record struct {
	Guess    string `json:"guess"`
	Feedback Vector `json:"feedback"`
}
