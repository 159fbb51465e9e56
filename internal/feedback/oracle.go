// internal/feedback/oracle.go
//
// The feedback oracle: scores a guess against a known secret.
//
// Compute implements the standard two-pass algorithm:
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count the remaining (unmatched) secret letters.
//
// Pass 2:
//   - For each non-correct guess letter: if a count remains for that letter,
//     mark Present and decrement the count; otherwise mark Absent.
//
// Consuming counts is what makes repeated letters come out right; testing
// each letter independently for membership over-reports Present.

package feedback

// Compute returns the feedback for guess against secret.
// Both words must be lowercase a–z and of equal length; the solver
// validates that before calling.
func Compute(guess, secret string) Vector {
	n := len(guess)
	res := make(Vector, n)

	// Letter counts for the unmatched secret positions (a–z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = Correct
		} else {
			counts[idx(secret[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = Present
			counts[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// KeyOf is Compute(guess, secret).Key() without allocating the vector.
// The filter and the partition heuristics call it in their inner loops.
func KeyOf(guess, secret string) uint64 {
	n := len(guess)
	var counts [26]int
	var marks [maxLen]Symbol
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			marks[i] = Correct
		} else {
			counts[idx(secret[i])]++
		}
	}
	var k uint64
	for i := 0; i < n; i++ {
		s := marks[i]
		if s != Correct {
			j := idx(guess[i])
			if counts[j] > 0 {
				s = Present
				counts[j]--
			}
		}
		k = k*3 + uint64(s)
	}
	return k
}

// MaxLength is the longest word the oracle accepts; base-3 keys of this
// length still fit in a uint64.
const MaxLength = maxLen

const maxLen = 32

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'a') }
