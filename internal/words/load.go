// internal/words/load.go
//
// Word list loading.
//
// Load resolves a list for a word length in this order:
//   1. WORDS_FILE_<N> (e.g. WORDS_FILE_5=/path/to/five.txt)
//   2. WORDS_FILE, filtered to length N
//   3. the embedded default list for N (assets package)
//
// Files hold one word per line; blank lines and lines starting with '#'
// are ignored.

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/robalobadob/wordsolver/assets"
)

// Load returns the vocabulary of the given length.
func Load(length int) (*Vocabulary, error) {
	if err := ValidLength(length); err != nil {
		return nil, err
	}
	if p := os.Getenv("WORDS_FILE_" + strconv.Itoa(length)); p != "" {
		return ReadFile(p, length)
	}
	if p := os.Getenv("WORDS_FILE"); p != "" {
		return ReadFile(p, length)
	}
	list, err := assets.Words(length)
	if err != nil {
		return nil, fmt.Errorf("words: no embedded list for length %d: %w", length, err)
	}
	return New(length, list)
}

// ReadFile loads a vocabulary of the given length from a word file.
func ReadFile(path string, length int) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	v, err := Read(f, length)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return v, nil
}

// Read loads a vocabulary of the given length from r.
func Read(r io.Reader, length int) (*Vocabulary, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return New(length, lines)
}

// ReadLines returns the normalized non-comment lines of r, of any length.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}
