package dpll

import "context"

// decisionRecord is the engine's (literal, first-branch-flag,
// tried-value) tuple from a single decision. literal and tried always
// reflect the value currently in effect on the trail for this decision:
// before a flip literal equals the variable itself and tried is True (the
// first branch is always True for a positive-id variable), after a flip
// both have been inverted.
type decisionRecord struct {
	literal     int
	firstBranch bool
	tried       Value
}

// Result is the outcome of a Solve call.
type Result struct {
	Satisfiable bool
	// Assignment holds one signed literal per variable, in ascending
	// variable-id order, using the same convention as an input clause.
	// Only populated when Satisfiable is true.
	Assignment []int
	Decisions  int64
	Backtracks int64
}

// Engine drives the DPLL search loop over a Store: decide-or-propagate,
// conflict test, backtrack-with-branch-flip, and the termination test, in
// the order spec'd by the single-iteration loop.
type Engine struct {
	store     *Store
	watch     *WatchIndex
	prop      *Propagator
	heuristic Heuristic
	stats     *Stats
	tracer    Tracer

	trail     []int
	decisions []decisionRecord
}

// NewEngine wires a Store, its WatchIndex, a branching Heuristic, and a
// Stats recorder into an Engine ready to Solve.
func NewEngine(store *Store, watch *WatchIndex, heuristic Heuristic, stats *Stats, tracer Tracer) *Engine {
	if tracer == nil {
		tracer = NopTracer{}
	}
	return &Engine{
		store:     store,
		watch:     watch,
		prop:      NewPropagator(store, stats),
		heuristic: heuristic,
		stats:     stats,
		tracer:    tracer,
	}
}

// Solve runs the search to completion. ctx is polled once per loop
// iteration as an optional external cancellation surface; no other engine
// behavior depends on it. A canceled context aborts the search and returns
// ctx.Err() with the store left in whatever partial state the search had
// reached.
func (e *Engine) Solve(ctx context.Context) (*Result, error) {
	if e.store.N == 0 {
		return &Result{Satisfiable: true}, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if lit, ok := e.prop.Step(); ok {
			e.trail = append(e.trail, lit)
			e.tracer.Tracef("propagated %d", lit)
		} else if err := e.decide(); err != nil {
			return nil, err
		}

		top := e.trail[len(e.trail)-1]
		if e.hasConflict(top) {
			if !e.rollBack() {
				e.tracer.Tracef("exhausted: UNSAT")
				return &Result{
					Satisfiable: false,
					Decisions:   e.stats.Decisions(),
					Backtracks:  e.stats.Backtracks(),
				}, nil
			}
			continue
		}

		if len(e.trail) == e.store.N {
			return e.result(), nil
		}
	}
}

// hasConflict scans the watch list of the literal just falsified by the
// assignment at the top of the trail, looking for a now-empty clause.
func (e *Engine) hasConflict(top int) bool {
	for _, ci := range e.watch.For(-top) {
		if e.store.IsEmpty(ci) {
			return true
		}
	}
	return false
}

// decide selects the next decision variable via the active heuristic,
// assigns it True (the engine's convention for a first branch), and pushes
// a decision record plus the corresponding trail entry.
func (e *Engine) decide() error {
	candidates := e.undefinedVars()
	if len(candidates) == 0 {
		return &LogicError{Detail: "decide invoked with no undefined variables remaining"}
	}
	v := e.heuristic.Select(e.store, e.stats, candidates)
	e.store.Assign(v, True)
	e.decisions = append(e.decisions, decisionRecord{literal: v, firstBranch: true, tried: True})
	e.trail = append(e.trail, v)
	e.stats.RecordDecision()
	e.tracer.Tracef("decided %d (heuristic=%s)", v, e.heuristic.Name())
	return nil
}

// undefinedVars returns every currently-Undefined variable in ascending id
// order.
func (e *Engine) undefinedVars() []int {
	vars := make([]int, 0, e.store.N)
	for v := 1; v <= e.store.N; v++ {
		if e.store.VarValue(v) == Undefined {
			vars = append(vars, v)
		}
	}
	return vars
}

// rollBack implements the RollBack procedure: pop the trail back to the
// most recent decision that has only been tried one way, flip it, and
// report success; or, having exhausted every decision both ways, report
// failure.
func (e *Engine) rollBack() bool {
	for len(e.decisions) > 0 {
		d := &e.decisions[len(e.decisions)-1]

		for e.trail[len(e.trail)-1] != d.literal {
			lit := e.trail[len(e.trail)-1]
			e.trail = e.trail[:len(e.trail)-1]
			e.store.Unassign(Var(lit))
		}

		if d.firstBranch {
			d.firstBranch = false
			flipped := d.tried.invert()
			v := Var(d.literal)
			e.store.Assign(v, flipped)
			if flipped == False {
				d.literal = -v
			} else {
				d.literal = v
			}
			d.tried = flipped
			e.trail[len(e.trail)-1] = d.literal
			e.stats.RecordBacktrack()
			e.tracer.Tracef("flipped decision on %d to %s", v, flipped)
			return true
		}

		// Both branches tried: undo this decision entirely and keep
		// unwinding.
		lit := e.trail[len(e.trail)-1]
		e.trail = e.trail[:len(e.trail)-1]
		e.store.Unassign(Var(lit))
		e.decisions = e.decisions[:len(e.decisions)-1]
	}
	return false
}

// result assembles a satisfying assignment from the final store state, one
// signed literal per variable in ascending id order.
func (e *Engine) result() *Result {
	assignment := make([]int, e.store.N)
	for v := 1; v <= e.store.N; v++ {
		if e.store.VarValue(v) == True {
			assignment[v-1] = v
		} else {
			assignment[v-1] = -v
		}
	}
	return &Result{
		Satisfiable: true,
		Assignment:  assignment,
		Decisions:   e.stats.Decisions(),
		Backtracks:  e.stats.Backtracks(),
	}
}
