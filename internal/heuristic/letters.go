package heuristic

import "math"

// letterCounts counts every letter occurrence across words.
func letterCounts(list []string) (counts [26]int, total int) {
	for _, w := range list {
		for i := 0; i < len(w); i++ {
			counts[w[i]-'a']++
			total++
		}
	}
	return counts, total
}

// frequencyScore sums the candidate-wide count of every letter of w.
func frequencyScore(counts *[26]int, w string) float64 {
	s := 0
	for i := 0; i < len(w); i++ {
		s += counts[w[i]-'a']
	}
	return float64(s)
}

// LetterFrequency favours words made of letters common among the candidates.
func LetterFrequency() Heuristic {
	return Func{ID: "letter_frequency", Score: func(in Input) func(string) float64 {
		counts, _ := letterCounts(in.Candidates)
		return func(w string) float64 { return frequencyScore(&counts, w) }
	}}
}

// Positional scores each letter by how often it occurs at that exact position
// among the candidates. Earlier positions weigh more: position i of n carries
// weight (n-i)/n.
func Positional() Heuristic {
	return Func{ID: "positional", Score: func(in Input) func(string) float64 {
		if len(in.Candidates) == 0 {
			return func(string) float64 { return 0 }
		}
		n := len(in.Candidates[0])
		pos := make([][26]int, n)
		for _, w := range in.Candidates {
			for i := 0; i < n; i++ {
				pos[i][w[i]-'a']++
			}
		}
		return func(w string) float64 {
			var s float64
			for i := 0; i < n && i < len(w); i++ {
				s += float64(pos[i][w[i]-'a']) * float64(n-i) / float64(n)
			}
			return s
		}
	}}
}

// InformationGain scores each letter as p·log2(total/(count+1)) over the
// candidates' letter distribution and subtracts penalty for every letter of
// the word that an earlier guess already tried.
func InformationGain(penalty float64) Heuristic {
	return Func{ID: "information_gain", Score: func(in Input) func(string) float64 {
		counts, total := letterCounts(in.Candidates)
		var letter [26]float64
		if total > 0 {
			for c, n := range counts {
				if n == 0 {
					continue
				}
				letter[c] = float64(n) / float64(total) * math.Log2(float64(total)/float64(n+1))
			}
		}
		tried := guessedLetters(in.History)
		return func(w string) float64 {
			var s float64
			for i := 0; i < len(w); i++ {
				c := w[i] - 'a'
				s += letter[c]
				if tried[c] {
					s -= penalty
				}
			}
			return s
		}
	}}
}

// structural combines a small integer feature with letter frequency as a
// fractional tie-breaker, so the feature always dominates.
func structural(id string, feature func(in Input) func(w string) int) Heuristic {
	return Func{ID: id, Score: func(in Input) func(string) float64 {
		counts, total := letterCounts(in.Candidates)
		f := feature(in)
		return func(w string) float64 {
			return float64(f(w)) + frequencyScore(&counts, w)/float64(total+1)
		}
	}}
}

// DoubleLetters favours words with repeated letters, probing letter
// multiplicity that single-letter words never reveal.
func DoubleLetters() Heuristic {
	return structural("double_letters", func(Input) func(string) int {
		return func(w string) int {
			var seen [26]bool
			repeats := 0
			for i := 0; i < len(w); i++ {
				c := w[i] - 'a'
				if seen[c] {
					repeats++
				}
				seen[c] = true
			}
			return repeats
		}
	})
}

// VowelDensity favours words with many distinct vowels.
func VowelDensity() Heuristic {
	return structural("vowel_density", func(Input) func(string) int {
		return func(w string) int {
			var seen [26]bool
			n := 0
			for i := 0; i < len(w); i++ {
				switch c := w[i]; c {
				case 'a', 'e', 'i', 'o', 'u':
					if !seen[c-'a'] {
						seen[c-'a'] = true
						n++
					}
				}
			}
			return n
		}
	})
}

// Coverage favours words that try the most letters no earlier guess tried.
func Coverage() Heuristic {
	return structural("coverage", func(in Input) func(string) int {
		tried := guessedLetters(in.History)
		return func(w string) int {
			var seen [26]bool
			n := 0
			for i := 0; i < len(w); i++ {
				c := w[i] - 'a'
				if !seen[c] && !tried[c] {
					n++
				}
				seen[c] = true
			}
			return n
		}
	})
}
