package dpll

import "github.com/prometheus/client_golang/prometheus"

// Stats holds the CNF Statistics component: a per-variable count of how
// many times unit propagation has forced that variable, plus the engine's
// own decision/backtrack counters. The UP counter is monotonically
// non-decreasing and is never reset by RollBack or anywhere else during a
// single Solve call; it deliberately biases the UP heuristic toward
// variables that have historically been forced most often.
type Stats struct {
	upCounter []int64 // index 1..N
	decisions int64
	backtracks int64

	metrics *promMetrics
}

// NewStats allocates a Stats for n variables. If reg is non-nil, the
// decision/backtrack/forced counters are also registered as Prometheus
// counters under reg so a caller can scrape them mid-solve.
func NewStats(n int, reg prometheus.Registerer) *Stats {
	s := &Stats{upCounter: make([]int64, n+1)}
	if reg != nil {
		s.metrics = newPromMetrics(reg)
	}
	return s
}

func (s *Stats) RecordForced(v int) {
	s.upCounter[v]++
	if s.metrics != nil {
		s.metrics.forced.Inc()
	}
}

func (s *Stats) RecordDecision() {
	s.decisions++
	if s.metrics != nil {
		s.metrics.decisions.Inc()
	}
}

func (s *Stats) RecordBacktrack() {
	s.backtracks++
	if s.metrics != nil {
		s.metrics.backtracks.Inc()
	}
}

// UPCount returns the number of times variable v has been forced by unit
// propagation so far.
func (s *Stats) UPCount(v int) int64 {
	return s.upCounter[v]
}

// Decisions returns the number of decisions made so far.
func (s *Stats) Decisions() int64 { return s.decisions }

// Backtracks returns the number of times RollBack has flipped a decision
// so far.
func (s *Stats) Backtracks() int64 { return s.backtracks }

type promMetrics struct {
	decisions  prometheus.Counter
	backtracks prometheus.Counter
	forced     prometheus.Counter
}

func newPromMetrics(reg prometheus.Registerer) *promMetrics {
	m := &promMetrics{
		decisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dpll_decisions_total",
			Help: "Number of branching decisions made by the DPLL engine.",
		}),
		backtracks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dpll_backtracks_total",
			Help: "Number of times the DPLL engine flipped a decision after a conflict.",
		}),
		forced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dpll_unit_propagations_total",
			Help: "Number of variable assignments forced by unit propagation.",
		}),
	}
	reg.MustRegister(m.decisions, m.backtracks, m.forced)
	return m
}
