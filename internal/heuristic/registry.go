// internal/heuristic/registry.go
//
// Registry maps stable names (and 1-based indexes, in registration order) to
// configured strategies. Build one at startup and hand it to whatever needs
// to resolve a user's selection; resolution happens once, before a solve.

package heuristic

import (
	"fmt"
	"strconv"
	"strings"
)

// Options configures the built-in strategies.
type Options struct {
	// Seed drives the random strategy.
	Seed uint64
	// Budget bounds the guesses the partition strategies evaluate.
	Budget int
	// Penalty is the information_gain penalty per already-tried letter.
	Penalty float64
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Seed: 1, Budget: DefaultBudget, Penalty: 0.5}
}

// Registry resolves heuristic selections.
type Registry struct {
	order   []Heuristic
	byName  map[string]Heuristic
	aliases map[string]string
}

// NewRegistry returns a registry holding every built-in strategy.
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		byName: make(map[string]Heuristic),
		// Names used by earlier versions of the solver.
		aliases: map[string]string{
			"frequent_letters": "letter_frequency",
			"frequency":        "letter_frequency",
			"partition":        "entropy",
		},
	}
	for _, h := range []Heuristic{
		LetterFrequency(),
		Positional(),
		InformationGain(opts.Penalty),
		Entropy(opts.Budget),
		Minimax(opts.Budget),
		ExpectedSize(opts.Budget),
		DoubleLetters(),
		VowelDensity(),
		Coverage(),
		Random{Seed: opts.Seed},
	} {
		_ = r.Register(h)
	}
	return r
}

// Register adds h. Names must be unique.
func (r *Registry) Register(h Heuristic) error {
	name := h.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("heuristic %q already registered", name)
	}
	r.byName[name] = h
	r.order = append(r.order, h)
	return nil
}

// Resolve returns the strategy for a name, an alias, or a 1-based index.
func (r *Registry) Resolve(sel string) (Heuristic, error) {
	key := strings.ToLower(strings.TrimSpace(sel))
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > len(r.order) {
			return nil, fmt.Errorf("%w: index %d (1..%d)", ErrInvalidHeuristic, n, len(r.order))
		}
		return r.order[n-1], nil
	}
	if canon, ok := r.aliases[key]; ok {
		key = canon
	}
	if h, ok := r.byName[key]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrInvalidHeuristic, sel, strings.Join(r.Names(), ", "))
}

// Names lists the registered names in index order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	for i, h := range r.order {
		out[i] = h.Name()
	}
	return out
}

// All returns the registered strategies in index order.
func (r *Registry) All() []Heuristic {
	out := make([]Heuristic, len(r.order))
	copy(out, r.order)
	return out
}
