// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/heuristics", "/metrics".
//   - Solver endpoints: POST /solve, POST /suggest, /sessions/*.
//   - Token endpoint POST /auth/token and the gated POST /batch.
//
// Notes:
//   - Vocabularies are resolved per word length through Options.Vocabulary and
//     a Solver is cached per length.
//   - Sessions live in the store only until they finish.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsolver/internal/batch"
	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/metrics"
	"github.com/robalobadob/wordsolver/internal/render"
	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/store"
	"github.com/robalobadob/wordsolver/internal/words"
)

// Options are the server's dependencies and settings.
type Options struct {
	// Vocabulary returns the word list for a length.
	Vocabulary func(length int) (*words.Vocabulary, error)
	Registry   *heuristic.Registry
	// Solver is the policy applied to every solve. An Opener only applies to
	// vocabularies of its own length.
	Solver        solver.Config
	DefaultLength int
	Heuristic     string // default heuristic selection
	Salt          string // for secrets picked by key

	Store    store.Store
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	ClientOrigin string
	Timeout      time.Duration
	Auth         AuthConfig
	BatchWorkers int
}

// Server bundles the router and the solver dependencies.
type Server struct {
	r    *chi.Mux
	opts Options

	mu      sync.Mutex
	solvers map[int]*solver.Solver // keyed by word length
}

var validate = validator.New()

// timeNow is swapped in tests.
var timeNow = time.Now

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Registry == nil {
		opts.Registry = heuristic.NewRegistry(heuristic.DefaultOptions())
	}
	if opts.Vocabulary == nil {
		opts.Vocabulary = words.Load
	}
	if opts.DefaultLength == 0 {
		opts.DefaultLength = 5
	}
	if opts.Heuristic == "" {
		opts.Heuristic = "letter_frequency"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	s := &Server{r: chi.NewRouter(), opts: opts, solvers: make(map[int]*solver.Solver)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                   // zerolog access log
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))     // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordsolver",
			"endpoints": []string{
				"/health", "/heuristics", "POST /solve", "POST /suggest",
				"POST /sessions", "POST /sessions/{id}/step", "GET /sessions/{id}",
				"POST /auth/token", "POST /batch", "/metrics",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.opts.Store.Len()})
	})
	if opts.Gatherer != nil {
		s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	s.r.Get("/heuristics", s.handleHeuristics)
	s.r.Post("/solve", s.handleSolve)
	s.r.Post("/suggest", s.handleSuggest)
	s.mountSessions(s.r)

	s.r.Post("/auth/token", s.handleToken)
	s.r.With(s.requireAuth()).Post("/batch", s.handleBatch)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// solverFor returns the cached Solver for a word length, building it on first use.
func (s *Server) solverFor(length int) (*solver.Solver, error) {
	if length == 0 {
		length = s.opts.DefaultLength
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv, ok := s.solvers[length]; ok {
		return sv, nil
	}
	v, err := s.opts.Vocabulary(length)
	if err != nil {
		return nil, err
	}
	cfg := s.opts.Solver
	if len(cfg.Opener) != length {
		cfg.Opener = ""
	}
	sv, err := solver.New(v, cfg)
	if err != nil {
		return nil, err
	}
	s.solvers[length] = sv
	return sv, nil
}

// resolve picks the requested heuristic, or the default one.
func (s *Server) resolve(sel string) (heuristic.Heuristic, error) {
	if sel == "" {
		sel = s.opts.Heuristic
	}
	return s.opts.Registry.Resolve(sel)
}

// ------------------------------- responses ---------------------------------

// stepView is one guess as sent to clients.
type stepView struct {
	Guess    string        `json:"guess"`
	Feedback string        `json:"feedback"`
	Marks    []render.Mark `json:"marks"`
	Emoji    string        `json:"emoji"`
}

func viewOf(rec solver.GuessRecord) stepView {
	return stepView{
		Guess:    rec.Guess,
		Feedback: rec.Feedback.String(),
		Marks:    render.Marks(rec.Feedback),
		Emoji:    render.Emoji(rec.Feedback),
	}
}

func viewsOf(history []solver.GuessRecord) []stepView {
	out := make([]stepView, len(history))
	for i, rec := range history {
		out[i] = viewOf(rec)
	}
	return out
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code, "message": msg}.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

// writeSolveError maps solver and input errors to status codes.
func writeSolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, solver.ErrInvalidSecret):
		writeError(w, http.StatusBadRequest, "invalid_secret", err.Error())
	case errors.Is(err, solver.ErrInvalidHeuristic):
		writeError(w, http.StatusBadRequest, "invalid_heuristic", err.Error())
	case errors.Is(err, solver.ErrInvalidConfig), errors.Is(err, words.ErrEmpty):
		writeError(w, http.StatusBadRequest, "invalid_length", err.Error())
	case errors.Is(err, render.ErrParse):
		writeError(w, http.StatusBadRequest, "invalid_feedback", err.Error())
	case errors.Is(err, batch.ErrPercent):
		writeError(w, http.StatusBadRequest, "invalid_percent", err.Error())
	case errors.Is(err, solver.ErrEmptyCandidateSet):
		writeError(w, http.StatusUnprocessableEntity, "no_candidates", err.Error())
	case errors.Is(err, solver.ErrFinished):
		writeError(w, http.StatusConflict, "finished", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decode reads a JSON body into v and validates its struct tags.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}
