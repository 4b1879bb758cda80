package dpll

// Propagator performs boolean constraint propagation one step at a time:
// each call to Step scans the clause database in a fixed order for the
// first unit clause and forces its remaining literal, or returns false once
// no clause is unit. The engine calls Step in a loop, running its conflict
// probe after every forced assignment, so single-step propagation and
// fixed-point propagation are behaviorally equivalent here.
type Propagator struct {
	store *Store
	stats *Stats
}

// NewPropagator builds a Propagator over store, recording every forced
// assignment into stats.
func NewPropagator(store *Store, stats *Stats) *Propagator {
	return &Propagator{store: store, stats: stats}
}

// Step forces the first unit clause's remaining literal, if any, and
// returns it. It returns ok=false when no clause is currently unit.
func (p *Propagator) Step() (lit int, ok bool) {
	for i := range p.store.Clauses {
		forced, isUnit := p.store.IsUnit(i)
		if !isUnit {
			continue
		}
		v := Var(forced)
		val := True
		if forced < 0 {
			val = False
		}
		p.store.Assign(v, val)
		p.stats.RecordForced(v)
		return forced, true
	}
	return 0, false
}
