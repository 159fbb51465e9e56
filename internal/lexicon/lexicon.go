// Package lexicon stores word lists in SQLite so vocabularies can be
// imported once and loaded by length.
package lexicon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsolver/assets"
	"github.com/robalobadob/wordsolver/internal/feedback"
	"github.com/robalobadob/wordsolver/internal/words"
)

// Lexicon is a SQLite-backed word store.
type Lexicon struct {
	db *sql.DB
}

// Open opens the database at dsn and applies the embedded migrations.
func Open(dsn string) (*Lexicon, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("open lexicon %s: %w", dsn, err)
	}
	if err := migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate lexicon: %w", err)
	}
	return &Lexicon{db: db}, nil
}

// Close releases the database.
func (l *Lexicon) Close() error { return l.db.Close() }

// Import inserts list under source, skipping words that are not a–z, are too
// long to score, or are already present. It returns the number of new words.
func (l *Lexicon) Import(ctx context.Context, source string, list []string) (int, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word, length, source) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added, skipped := 0, 0
	for _, raw := range list {
		w := words.Normalize(raw)
		if !words.IsAlpha(w) || len(w) > feedback.MaxLength {
			skipped++
			continue
		}
		res, err := stmt.ExecContext(ctx, w, len(w), source)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	log.Info().Str("source", source).Int("added", added).Int("skipped", skipped).Msg("lexicon import")
	return added, nil
}

// ImportEmbedded loads every embedded default list.
func (l *Lexicon) ImportEmbedded(ctx context.Context) (int, error) {
	total := 0
	for _, n := range assets.Lengths() {
		list, err := assets.Words(n)
		if err != nil {
			return total, err
		}
		added, err := l.Import(ctx, fmt.Sprintf("embedded:%d", n), list)
		if err != nil {
			return total, err
		}
		total += added
	}
	return total, nil
}

// Vocabulary returns the stored words of the given length in insertion order.
func (l *Lexicon) Vocabulary(ctx context.Context, length int) (*words.Vocabulary, error) {
	if err := words.ValidLength(length); err != nil {
		return nil, err
	}
	rows, err := l.db.QueryContext(ctx, `SELECT word FROM words WHERE length=? ORDER BY rowid`, length)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words.New(length, list)
}

// Counts returns the number of stored words per length.
func (l *Lexicon) Counts(ctx context.Context) (map[int]int, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT length, COUNT(1) FROM words GROUP BY length ORDER BY length`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var n, c int
		if err := rows.Scan(&n, &c); err != nil {
			return nil, err
		}
		out[n] = c
	}
	return out, rows.Err()
}
