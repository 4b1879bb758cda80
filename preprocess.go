package dpll

import (
	"sort"
	"strconv"
)

// DedupClauses drops any clause that is, modulo literal order, equal to an
// earlier clause. Solve runs it before SubsumeClauses when both are
// enabled. SubsumeClauses never removes equal clauses (it requires a strict
// subset), so exact duplicates are only dropped here.
func DedupClauses(clauses [][]int) [][]int {
	seen := make(map[string]struct{}, len(clauses))
	out := make([][]int, 0, len(clauses))
	for _, c := range clauses {
		key := sortedKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SubsumeClauses removes every clause that has some other clause as a
// literal subset. A clause sorts its own copy of each clause's literals
// before the subset test regardless of whether DedupClauses already ran,
// since the binary search below requires sorted input.
func SubsumeClauses(clauses [][]int) [][]int {
	sorted := make([][]int, len(clauses))
	for i, c := range clauses {
		sc := append([]int(nil), c...)
		sort.Ints(sc)
		sorted[i] = sc
	}

	removed := make([]bool, len(clauses))
	for i := range clauses {
		if removed[i] {
			continue
		}
		for j := range clauses {
			if i == j || removed[j] {
				continue
			}
			// A subsumes B iff A ⊆ B and A != B. Since both are sorted,
			// a same-length subset is necessarily equal, so the strict
			// length check below is exactly the A != B condition.
			if len(sorted[i]) < len(sorted[j]) && isSortedSubset(sorted[i], sorted[j]) {
				removed[j] = true
			}
		}
	}

	out := make([][]int, 0, len(clauses))
	for i, c := range clauses {
		if !removed[i] {
			out = append(out, c)
		}
	}
	return out
}

// isSortedSubset reports whether every element of a appears in b, where
// both slices are sorted ascending.
func isSortedSubset(a, b []int) bool {
	i := 0
	for _, x := range a {
		idx := sort.SearchInts(b[i:], x)
		if i+idx >= len(b) || b[i+idx] != x {
			return false
		}
		i += idx + 1
	}
	return true
}

// sortedKey returns a canonical string key for a clause, invariant under
// reordering of its literals.
func sortedKey(c []int) string {
	sorted := append([]int(nil), c...)
	sort.Ints(sorted)
	key := make([]byte, 0, len(sorted)*6)
	for _, lit := range sorted {
		key = strconv.AppendInt(key, int64(lit), 10)
		key = append(key, ',')
	}
	return string(key)
}
