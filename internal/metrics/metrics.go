// internal/metrics/metrics.go
//
// Prometheus instrumentation for solves.
// Exposes:
//   - wordsolver_solver_solves_total{heuristic,status}
//   - wordsolver_solver_guesses{heuristic} (guesses per finished solve)
//   - wordsolver_solver_errors_total{heuristic,kind}
//
// Metrics are registered on the Registerer handed to New, so tests and the
// HTTP server can each use their own registry.

package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/wordsolver/internal/solver"
)

const (
	namespace = "wordsolver"
	subsystem = "solver"
)

// Metrics holds the solve counters and histograms.
type Metrics struct {
	Solves  *prometheus.CounterVec
	Guesses *prometheus.HistogramVec
	Errors  *prometheus.CounterVec
}

// New creates and registers the metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solves_total",
			Help:      "Finished solves by heuristic and terminal status.",
		}, []string{"heuristic", "status"}),
		Guesses: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "guesses",
			Help:      "Guesses used per finished solve.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}, []string{"heuristic"}),
		Errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Solves that failed, by heuristic and error kind.",
		}, []string{"heuristic", "kind"}),
	}
}

// Observe records the outcome of one solve. A nil receiver is a no-op.
func (m *Metrics) Observe(heuristic string, res solver.Result, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Errors.WithLabelValues(heuristic, Kind(err)).Inc()
		return
	}
	m.Solves.WithLabelValues(heuristic, string(res.Status)).Inc()
	m.Guesses.WithLabelValues(heuristic).Observe(float64(res.Guesses))
}

// Kind maps a solve error to a short label value.
func Kind(err error) string {
	switch {
	case errors.Is(err, solver.ErrEmptyCandidateSet):
		return "empty_candidates"
	case errors.Is(err, solver.ErrInvalidSecret):
		return "invalid_secret"
	case errors.Is(err, solver.ErrInvalidHeuristic):
		return "invalid_heuristic"
	case errors.Is(err, solver.ErrInvalidConfig):
		return "invalid_config"
	default:
		return "other"
	}
}
