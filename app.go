// app.go
//
// Glue shared by the commands: configuration, logging, vocabularies and
// solvers built from the loaded config.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsolver/internal/config"
	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/lexicon"
	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/words"
)

// cfg is loaded once per invocation by the root command.
var cfg config.Config

// setupLogging sets the global level; console output unless json is set.
func setupLogging(level string, json bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !json {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

// registry builds the heuristic registry from the solver config.
func registry() *heuristic.Registry {
	return heuristic.NewRegistry(heuristic.Options{
		Seed:    cfg.Solver.Seed,
		Budget:  cfg.Solver.Budget,
		Penalty: cfg.Solver.Penalty,
	})
}

// vocabularyLoader returns a loader reading from the lexicon DB when one is
// configured, else from WORDS_FILE overrides or the embedded lists.
func vocabularyLoader() (func(int) (*words.Vocabulary, error), func() error, error) {
	if cfg.Words.DB == "" {
		return words.Load, func() error { return nil }, nil
	}
	lx, err := lexicon.Open(cfg.Words.DB)
	if err != nil {
		return nil, nil, err
	}
	load := func(n int) (*words.Vocabulary, error) {
		return lx.Vocabulary(context.Background(), n)
	}
	return load, lx.Close, nil
}

// solverConfig maps the loaded config onto solver policy.
func solverConfig(reg *heuristic.Registry) (solver.Config, error) {
	sc := solver.Config{
		MaxGuesses: cfg.Solver.MaxGuesses,
		HardMode:   cfg.Solver.HardMode,
		Opener:     strings.ToLower(cfg.Solver.Opener),
	}
	if cfg.Solver.OpenerHeuristic != "" {
		h, err := reg.Resolve(cfg.Solver.OpenerHeuristic)
		if err != nil {
			return sc, fmt.Errorf("opener heuristic: %w", err)
		}
		sc.OpenerHeuristic = h
	}
	return sc, nil
}

// newSolver builds the solver for the configured word length.
func newSolver(reg *heuristic.Registry) (*solver.Solver, func() error, error) {
	load, closeFn, err := vocabularyLoader()
	if err != nil {
		return nil, nil, err
	}
	v, err := load(cfg.Solver.Length)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	sc, err := solverConfig(reg)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	s, err := solver.New(v, sc)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	log.Debug().Int("length", v.Length()).Int("words", v.Len()).Bool("hard_mode", sc.HardMode).Msg("solver ready")
	return s, closeFn, nil
}
