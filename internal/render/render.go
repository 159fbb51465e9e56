// Package render converts feedback vectors to and from the encodings people
// type and read: digit strings, colour letters, emoji squares, the
// "hit/present/miss" marks of the JSON API, and coloured terminal tiles.
package render

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordsolver/internal/feedback"
)

// Mark is the API name of a symbol.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// ErrParse means a feedback string could not be decoded.
var ErrParse = errors.New("cannot parse feedback")

// Digits renders Correct as 2, Present as 1 and Absent as 0.
func Digits(v feedback.Vector) string {
	return each(v, "2", "1", "0")
}

// Letters renders colour initials: g(reen), y(ellow) and "-".
func Letters(v feedback.Vector) string {
	return each(v, "g", "y", "-")
}

// Emoji renders the familiar share squares.
func Emoji(v feedback.Vector) string {
	return each(v, "🟩", "🟨", "⬛")
}

func each(v feedback.Vector, correct, present, absent string) string {
	var b strings.Builder
	for _, s := range v {
		switch s {
		case feedback.Correct:
			b.WriteString(correct)
		case feedback.Present:
			b.WriteString(present)
		default:
			b.WriteString(absent)
		}
	}
	return b.String()
}

// Marks renders one Mark per position.
func Marks(v feedback.Vector) []Mark {
	out := make([]Mark, len(v))
	for i, s := range v {
		switch s {
		case feedback.Correct:
			out[i] = MarkHit
		case feedback.Present:
			out[i] = MarkPresent
		default:
			out[i] = MarkMiss
		}
	}
	return out
}

var symbols = map[rune]feedback.Symbol{
	'c': feedback.Correct, 'g': feedback.Correct, '2': feedback.Correct, '🟩': feedback.Correct,
	'p': feedback.Present, 'y': feedback.Present, '1': feedback.Present, '🟨': feedback.Present,
	'a': feedback.Absent, '-': feedback.Absent, '.': feedback.Absent, '_': feedback.Absent,
	'x': feedback.Absent, '0': feedback.Absent, '⬛': feedback.Absent, '⬜': feedback.Absent,
}

var marks = map[Mark]feedback.Symbol{
	MarkHit: feedback.Correct, MarkPresent: feedback.Present, MarkMiss: feedback.Absent,
}

// Parse decodes any encoding produced by this package (plus C/P/A letter
// codes). Comma separated input is read as marks. When n > 0 the result
// must have exactly n positions.
func Parse(s string, n int) (feedback.Vector, error) {
	s = strings.TrimSpace(s)
	var v feedback.Vector
	if strings.Contains(s, ",") {
		for _, part := range strings.Split(s, ",") {
			sym, ok := marks[Mark(strings.ToLower(strings.TrimSpace(part)))]
			if !ok {
				return nil, fmt.Errorf("%w: mark %q", ErrParse, part)
			}
			v = append(v, sym)
		}
	} else {
		for _, r := range s {
			if unicode.IsSpace(r) || r == '\uFE0F' {
				continue
			}
			sym, ok := symbols[unicode.ToLower(r)]
			if !ok {
				return nil, fmt.Errorf("%w: symbol %q", ErrParse, r)
			}
			v = append(v, sym)
		}
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrParse)
	}
	if n > 0 && len(v) != n {
		return nil, fmt.Errorf("%w: %d positions, want %d", ErrParse, len(v), n)
	}
	return v, nil
}

var (
	tileBase = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF"))
	tileCorrect = tileBase.Background(lipgloss.Color("#538D4E"))
	tilePresent = tileBase.Background(lipgloss.Color("#B59F3B"))
	tileAbsent  = tileBase.Background(lipgloss.Color("#3A3A3C"))
)

// Tiles renders guess as coloured letter tiles for a terminal.
func Tiles(guess string, v feedback.Vector) string {
	cells := make([]string, 0, len(guess))
	for i := 0; i < len(guess); i++ {
		style := tileAbsent
		if i < len(v) {
			switch v[i] {
			case feedback.Correct:
				style = tileCorrect
			case feedback.Present:
				style = tilePresent
			}
		}
		cells = append(cells, style.Render(strings.ToUpper(guess[i:i+1])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
