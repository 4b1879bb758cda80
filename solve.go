package dpll

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Options configures a Solve call.
type Options struct {
	// Heuristic names the branching strategy: "first" (default), "random",
	// "max", "moms", "weighted", "up", or "aupc".
	Heuristic string
	// Seed seeds the random heuristic's RNG. Ignored by every other
	// heuristic.
	Seed int64
	// Dedup enables duplicate-clause removal during preprocessing.
	Dedup bool
	// Subsume enables subsumption elimination during preprocessing. When
	// both Dedup and Subsume are set, dedup always runs first.
	Subsume bool
	// Registerer, if non-nil, receives the solve's Prometheus counters
	// (decisions, backtracks, unit propagations).
	Registerer prometheus.Registerer
	// Tracer, if non-nil, receives low-level diagnostic events.
	Tracer Tracer
}

// Solve decides satisfiability of the CNF formula over variables 1..n given
// by clauses, each an unordered list of nonzero signed integers. It returns
// a DomainError if n is non-positive or any literal's magnitude exceeds n,
// and a StrategyError if opts.Heuristic names an unrecognized strategy.
func Solve(ctx context.Context, n int, clauses [][]int, opts Options) (*Result, error) {
	if n <= 0 {
		return nil, &DomainError{Detail: "variable count must be positive"}
	}
	for _, c := range clauses {
		for _, lit := range c {
			if lit == 0 {
				return nil, &DomainError{Detail: "literal 0 is not a valid signed literal"}
			}
			if Var(lit) > n {
				return nil, &DomainError{Detail: "literal magnitude exceeds declared variable count"}
			}
		}
	}

	heuristic, err := ParseHeuristic(opts.Heuristic, opts.Seed)
	if err != nil {
		return nil, err
	}

	working := clauses
	if opts.Dedup {
		working = DedupClauses(working)
	}
	if opts.Subsume {
		working = SubsumeClauses(working)
	}

	store := NewStore(n, working)
	watch := BuildWatchIndex(working)
	stats := NewStats(n, opts.Registerer)
	engine := NewEngine(store, watch, heuristic, stats, opts.Tracer)
	return engine.Solve(ctx)
}
