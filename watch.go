package dpll

// WatchIndex maps each signed literal to the indices of the clauses that
// contain it exactly (sign included). It is built once, after
// preprocessing, over the static clause database and is never mutated
// during search; this is not the two-watched-literals scheme from modern
// CDCL solvers, just a plain literal->clauses index used to restrict the
// engine's conflict scan to the clauses that could possibly have just gone
// empty.
type WatchIndex struct {
	lists map[int][]int
}

// BuildWatchIndex indexes every clause's literals.
func BuildWatchIndex(clauses [][]int) *WatchIndex {
	w := &WatchIndex{lists: make(map[int][]int)}
	for i, c := range clauses {
		for _, lit := range c {
			w.lists[lit] = append(w.lists[lit], i)
		}
	}
	return w
}

// For returns the clause indices containing lit exactly.
func (w *WatchIndex) For(lit int) []int {
	return w.lists[lit]
}
