// Package assets embeds the default vocabularies and the lexicon migrations.
package assets

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed words5.txt words6.txt words7.txt
var wordFS embed.FS

//go:embed sql/*.sql
var sqlFS embed.FS

func readLines(name string) ([]string, error) {
	f, err := wordFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// Words returns the embedded word list for the given length.
func Words(length int) ([]string, error) {
	return readLines(fmt.Sprintf("words%d.txt", length))
}

// Lengths lists the word lengths with an embedded list.
func Lengths() []int { return []int{5, 6, 7} }

// Migrations exposes the lexicon's *.sql files rooted at "sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(sqlFS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
