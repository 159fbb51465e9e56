package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsolver/internal/batch"
	"github.com/robalobadob/wordsolver/internal/config"
	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/httpserver"
	"github.com/robalobadob/wordsolver/internal/lexicon"
	"github.com/robalobadob/wordsolver/internal/metrics"
	"github.com/robalobadob/wordsolver/internal/render"
	"github.com/robalobadob/wordsolver/internal/secret"
	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/store"
	"github.com/robalobadob/wordsolver/internal/words"
)

var (
	configPath string
	logLevel   string
	jsonLogs   bool
	length     int
	heurSel    string
	hardMode   bool
	opener     string
	maxGuesses int
	dbPath     string
	seed       uint64
	budget     int
	secretKey  string
	randomPick bool
	compareAll bool
	percent    float64
	workers    int
	embedded   bool
	plain      bool

	rootCmd = &cobra.Command{
		Use:           "wordsolver",
		Short:         "Deduce a secret word from letter feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			applyFlags(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}
			setupLogging(cfg.LogLevel, jsonLogs || cmd.Name() == "serve")
			return nil
		},
	}

	solveCmd = &cobra.Command{
		Use:   "solve [secret]",
		Short: "Solve a secret word (given, keyed, seeded or today's)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}

	suggestCmd = &cobra.Command{
		Use:   "suggest [guess=feedback ...]",
		Short: "Suggest the next guess for a game played elsewhere",
		Long: `Each argument pairs a guess with the feedback it received, e.g.
  wordsolver suggest crane=PCCAC  or  crane=12202  or  crane=ygg-g`,
		RunE: runSuggest,
	}

	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Solve the first N% of the vocabulary and report statistics",
		RunE:  runBatch,
	}

	heuristicsCmd = &cobra.Command{
		Use:   "heuristics",
		Short: "List the available heuristics",
		Run: func(cmd *cobra.Command, args []string) {
			for i, name := range registry().Names() {
				fmt.Printf("%2d. %s\n", i+1, name)
			}
		},
	}

	importCmd = &cobra.Command{
		Use:   "import [file...]",
		Short: "Import word lists into the SQLite lexicon",
		RunE:  runImport,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default wordsolver.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error")
	pf.BoolVar(&jsonLogs, "json-logs", false, "log as JSON instead of console text")
	pf.IntVarP(&length, "length", "n", 5, "word length")
	pf.StringVarP(&heurSel, "heuristic", "H", "", "heuristic name or 1-based index")
	pf.BoolVar(&hardMode, "hard-mode", true, "only guess words consistent with all feedback")
	pf.StringVar(&opener, "opener", "", "fixed first guess")
	pf.IntVar(&maxGuesses, "max-guesses", 0, "guess budget (0 = length + 1)")
	pf.StringVar(&dbPath, "db", "", "SQLite lexicon to read words from")
	pf.Uint64Var(&seed, "seed", 1, "seed for the random heuristic and --random")
	pf.IntVar(&budget, "budget", heuristic.DefaultBudget, "guesses evaluated by partition heuristics")

	solveCmd.Flags().StringVar(&secretKey, "key", "", "pick the secret by HMAC of this key")
	solveCmd.Flags().BoolVar(&randomPick, "random", false, "pick the secret with --seed")
	solveCmd.Flags().BoolVar(&compareAll, "compare", false, "solve with every heuristic")
	solveCmd.Flags().BoolVar(&plain, "plain", false, "print letter codes instead of coloured tiles")

	batchCmd.Flags().Float64Var(&percent, "percent", 100, "share of the vocabulary to solve (first N%)")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")
	batchCmd.Flags().BoolVar(&compareAll, "compare", false, "run every heuristic")

	importCmd.Flags().BoolVar(&embedded, "embedded", false, "also import the built-in lists")

	rootCmd.AddCommand(solveCmd, suggestCmd, batchCmd, heuristicsCmd, importCmd, serveCmd)
}

// applyFlags overlays explicitly set flags onto the loaded config.
func applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if f.Changed("length") {
		cfg.Solver.Length = length
	}
	if f.Changed("heuristic") {
		cfg.Solver.Heuristic = heurSel
	}
	if f.Changed("hard-mode") {
		cfg.Solver.HardMode = hardMode
	}
	if f.Changed("opener") {
		cfg.Solver.Opener = opener
	}
	if f.Changed("max-guesses") {
		cfg.Solver.MaxGuesses = maxGuesses
	}
	if f.Changed("db") {
		cfg.Words.DB = dbPath
	}
	if f.Changed("seed") {
		cfg.Solver.Seed = seed
	}
	if f.Changed("budget") {
		cfg.Solver.Budget = budget
	}
	if f.Changed("workers") {
		cfg.Batch.Workers = workers
	}
	if f.Changed("percent") {
		cfg.Batch.Percent = percent
	}
}

// selected returns every heuristic with --compare, else the configured one.
func selected(reg *heuristic.Registry) ([]heuristic.Heuristic, error) {
	if compareAll {
		return reg.All(), nil
	}
	h, err := reg.Resolve(cfg.Solver.Heuristic)
	if err != nil {
		return nil, err
	}
	return []heuristic.Heuristic{h}, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	reg := registry()
	s, closeFn, err := newSolver(reg)
	if err != nil {
		return err
	}
	defer closeFn()

	hs, err := selected(reg)
	if err != nil {
		return err
	}

	v := s.Vocabulary()
	var word string
	switch {
	case len(args) == 1:
		word = args[0]
	case secretKey != "":
		word = secret.Pick(v, cfg.Words.Salt, secretKey)
	case randomPick:
		word = secret.Random(v, cfg.Solver.Seed)
	default:
		word = secret.Daily(v, cfg.Words.Salt, time.Now())
	}

	return solveEach(os.Stdout, s, hs, word, plain)
}

// solveEach solves word with every heuristic and prints each game. A failing
// heuristic is reported and the rest still run.
func solveEach(out io.Writer, s *solver.Solver, hs []heuristic.Heuristic, word string, plain bool) error {
	var failed []string
	for _, h := range hs {
		res, err := s.Solve(h, word)
		fmt.Fprintf(out, "%s\n", h.Name())
		for _, rec := range res.History {
			if plain {
				fmt.Fprintf(out, "  %s  %s\n", rec.Guess, rec.Feedback)
			} else {
				fmt.Fprintf(out, "  %s\n", render.Tiles(rec.Guess, rec.Feedback))
			}
		}
		switch {
		case err != nil:
			log.Warn().Err(err).Str("heuristic", h.Name()).Str("secret", word).Msg("solve failed")
			fmt.Fprintf(out, "  failed after %d guesses: %v\n", res.Guesses, err)
			failed = append(failed, h.Name())
		case res.Status == solver.StatusSolved:
			fmt.Fprintf(out, "  solved in %d guesses\n", res.Guesses)
		default:
			fmt.Fprintf(out, "  %s after %d guesses (secret %s)\n", res.Status, res.Guesses, word)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d heuristics failed: %s", len(failed), len(hs), strings.Join(failed, ", "))
	}
	return nil
}

// parseObserved reads guess=feedback arguments.
func parseObserved(args []string, n int) ([]solver.GuessRecord, error) {
	out := make([]solver.GuessRecord, 0, len(args))
	for _, a := range args {
		guess, fb, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q: want guess=feedback", a)
		}
		vec, err := render.Parse(fb, n)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", a, err)
		}
		out = append(out, solver.GuessRecord{Guess: words.Normalize(guess), Feedback: vec})
	}
	return out, nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	reg := registry()
	s, closeFn, err := newSolver(reg)
	if err != nil {
		return err
	}
	defer closeFn()

	h, err := reg.Resolve(cfg.Solver.Heuristic)
	if err != nil {
		return err
	}
	history, err := parseObserved(args, s.Vocabulary().Length())
	if err != nil {
		return err
	}
	sug, err := s.Suggest(h, history)
	if err != nil {
		return err
	}
	if sug.Solved {
		fmt.Printf("solved: %s\n", sug.Guess)
		return nil
	}
	fmt.Printf("next guess: %s (%d candidates left)\n", sug.Guess, sug.Remaining)
	if len(sug.Candidates) > 0 {
		fmt.Printf("candidates: %s\n", strings.Join(sug.Candidates, " "))
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	reg := registry()
	s, closeFn, err := newSolver(reg)
	if err != nil {
		return err
	}
	defer closeFn()

	hs, err := selected(reg)
	if err != nil {
		return err
	}
	secrets, err := batch.Sample(s.Vocabulary().Words(), cfg.Batch.Percent)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runner := &batch.Runner{Solver: s, Workers: cfg.Batch.Workers}
	rep, err := runner.Run(ctx, hs, secrets)
	if err != nil {
		return err
	}

	fmt.Printf("%d words (%.4g%% of %d), %d-letter, took %s\n",
		len(secrets), cfg.Batch.Percent, s.Vocabulary().Len(), s.Vocabulary().Length(), rep.Elapsed.Round(time.Millisecond))
	fmt.Printf("%-18s %6s %6s %6s %6s %7s %4s %4s %7s\n",
		"heuristic", "runs", "solved", "exh", "failed", "mean", "min", "max", "stddev")
	for _, sum := range rep.Summaries {
		fmt.Printf("%-18s %6d %6d %6d %6d %7.3f %4d %4d %7.3f\n",
			sum.Heuristic, sum.Runs, sum.Solved, sum.Exhausted, sum.Failed, sum.Mean, sum.Min, sum.Max, sum.StdDev)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if cfg.Words.DB == "" {
		return fmt.Errorf("import: no lexicon configured (use --db or LEXICON_DB)")
	}
	lx, err := lexicon.Open(cfg.Words.DB)
	if err != nil {
		return err
	}
	defer lx.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	total := 0
	if embedded {
		n, err := lx.ImportEmbedded(ctx)
		if err != nil {
			return err
		}
		total += n
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		list, err := words.ReadLines(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		n, err := lx.Import(ctx, path, list)
		if err != nil {
			return err
		}
		total += n
	}
	counts, err := lx.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d new words; lexicon now holds %v (length: count)\n", total, counts)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	reg := registry()
	load, closeFn, err := vocabularyLoader()
	if err != nil {
		return err
	}
	defer closeFn()
	sc, err := solverConfig(reg)
	if err != nil {
		return err
	}

	sessions := store.NewMemoryStore()
	go sweepSessions(cmd.Context(), sessions, 30*time.Minute)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := httpserver.New(httpserver.Options{
		Vocabulary:    load,
		Registry:      reg,
		Solver:        sc,
		DefaultLength: cfg.Solver.Length,
		Heuristic:     cfg.Solver.Heuristic,
		Salt:          cfg.Words.Salt,
		Store:         sessions,
		Metrics:       metrics.New(promReg),
		Gatherer:      promReg,
		ClientOrigin:  cfg.Server.ClientOrigin,
		Timeout:       cfg.Server.Timeout,
		BatchWorkers:  cfg.Batch.Workers,
		Auth: httpserver.AuthConfig{
			JWTSecret:  cfg.Server.JWTSecret,
			APIKeyHash: cfg.Server.APIKeyHash,
			TokenTTL:   cfg.Server.TokenTTL,
		},
	})
	log.Info().Str("port", cfg.Server.Port).Int("length", cfg.Solver.Length).
		Str("heuristic", cfg.Solver.Heuristic).Msg("starting wordsolver")
	return srv.Start(":" + cfg.Server.Port)
}

// sweepSessions drops sessions idle for longer than idle until ctx ends.
func sweepSessions(ctx context.Context, st store.Store, idle time.Duration) {
	if ctx == nil {
		ctx = context.Background()
	}
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Sweep(ctx, now.Add(-idle)); n > 0 {
				log.Info().Int("dropped", n).Msg("swept idle sessions")
			}
		}
	}
}
