package dpll

// Store owns the variables, the (immutable, post-preprocessing) clause
// database, and the current partial assignment. Every derived predicate
// below reads the same mutable assignment slice; clauses are never edited
// on satisfaction or rewritten during search, which keeps assign/unassign
// O(1) at the cost of a linear scan per predicate. That trade is the right
// one at the sizes this solver targets (uf20..uf100, hole6..hole9, and
// similarly small planted instances) and it makes backtracking trivial.
type Store struct {
	N       int
	Clauses [][]int

	assignment []Value // index 1..N; index 0 is unused
}

// NewStore builds a Store over clauses already ground to variables
// 1..n. Every variable starts Undefined.
func NewStore(n int, clauses [][]int) *Store {
	return &Store{
		N:          n,
		Clauses:    clauses,
		assignment: make([]Value, n+1),
	}
}

// VarValue returns the current value of variable v (unsigned).
func (s *Store) VarValue(v int) Value {
	return s.assignment[v]
}

// LiteralValue returns the value of lit under the current assignment:
// Undefined if its variable is unassigned, otherwise the variable's value
// negated when lit is negative.
func (s *Store) LiteralValue(lit int) Value {
	return valueOfSign(lit, s.assignment[Var(lit)])
}

// Assign sets variable v's value. The caller (the propagator or the
// engine) is responsible for pushing the corresponding literal onto the
// trail.
func (s *Store) Assign(v int, val Value) {
	s.assignment[v] = val
}

// Unassign clears variable v's value, restoring it to Undefined.
func (s *Store) Unassign(v int) {
	s.assignment[v] = Undefined
}

// OpenSize returns the number of literals in clause i whose variable is
// still Undefined.
func (s *Store) OpenSize(i int) int {
	n := 0
	for _, lit := range s.Clauses[i] {
		if s.LiteralValue(lit) == Undefined {
			n++
		}
	}
	return n
}

// IsSatisfied reports whether clause i has at least one literal whose value
// is True.
func (s *Store) IsSatisfied(i int) bool {
	for _, lit := range s.Clauses[i] {
		if s.LiteralValue(lit) == True {
			return true
		}
	}
	return false
}

// IsEmpty reports whether every literal in clause i is False: a local
// contradiction under the current assignment.
func (s *Store) IsEmpty(i int) bool {
	for _, lit := range s.Clauses[i] {
		if s.LiteralValue(lit) != False {
			return false
		}
	}
	return true
}

// IsUnit reports whether clause i is unit: exactly one literal Undefined
// and the clause not already satisfied. Satisfaction takes precedence over
// unit-by-count, so a satisfied clause is never unit even if only one of
// its literals remains undefined. When unit, it returns that literal.
func (s *Store) IsUnit(i int) (lit int, ok bool) {
	undefCount := 0
	var last int
	for _, l := range s.Clauses[i] {
		switch s.LiteralValue(l) {
		case True:
			return 0, false
		case Undefined:
			undefCount++
			last = l
			if undefCount > 1 {
				return 0, false
			}
		}
	}
	if undefCount == 1 {
		return last, true
	}
	return 0, false
}
