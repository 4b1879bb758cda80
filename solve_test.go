package dpll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

var allHeuristics = []string{"first", "random", "max", "moms", "weighted", "up", "aupc"}

func solveWith(t *testing.T, n int, clauses [][]int, heuristic string) *Result {
	t.Helper()
	result, err := Solve(context.Background(), n, clauses, Options{Heuristic: heuristic, Seed: 1})
	require.NoError(t, err)
	return result
}

func TestTriviallySAT(t *testing.T) {
	// p cnf 1 1 / 1 0 -> SAT, trail = [+1]
	result := solveWith(t, 1, [][]int{{1}}, "first")
	require.True(t, result.Satisfiable)
	require.Equal(t, []int{1}, result.Assignment)
}

func TestTriviallyUNSAT(t *testing.T) {
	// p cnf 1 2 / 1 0 / -1 0 -> UNSAT
	result := solveWith(t, 1, [][]int{{1}, {-1}}, "first")
	require.False(t, result.Satisfiable)
}

func TestUnitChainNoDecisions(t *testing.T) {
	// p cnf 3 3 / 1 0 / -1 2 0 / -2 3 0 -> SAT via propagation alone
	result := solveWith(t, 3, [][]int{{1}, {-1, 2}, {-2, 3}}, "first")
	require.True(t, result.Satisfiable)
	require.Equal(t, []int{1, 2, 3}, result.Assignment)
	require.Zero(t, result.Decisions, "a pure unit chain should need no decisions")
}

func TestOneBacktrackUnderFirstHeuristic(t *testing.T) {
	// p cnf 2 3 / 1 2 0 / -1 2 0 / -1 -2 0
	// decide x1=true, propagate forces x2=true from (-1 2), (-1 -2)
	// empties, flip x1 to false, propagate forces x2=true from (1 2)
	// -> SAT, {-1, +2}.
	result := solveWith(t, 2, [][]int{{1, 2}, {-1, 2}, {-1, -2}}, "first")
	require.True(t, result.Satisfiable)
	require.Equal(t, []int{-1, 2}, result.Assignment)
	require.Equal(t, int64(1), result.Decisions)
	require.Equal(t, int64(1), result.Backtracks)
}

// pigeonHole builds the classical pigeonhole-principle encoding: pigeons
// pigeons, holes holes, variable (p-1)*holes+h means "pigeon p sits in
// hole h". It is UNSAT whenever pigeons > holes.
func pigeonHole(pigeons, holes int) (int, [][]int) {
	n := pigeons * holes
	var clauses [][]int
	v := func(p, h int) int { return (p-1)*holes + h }
	for p := 1; p <= pigeons; p++ {
		var c []int
		for h := 1; h <= holes; h++ {
			c = append(c, v(p, h))
		}
		clauses = append(clauses, c)
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				clauses = append(clauses, []int{-v(p1, h), -v(p2, h)})
			}
		}
	}
	return n, clauses
}

func TestPigeonHoleSixUnsatUnderEveryHeuristic(t *testing.T) {
	n, clauses := pigeonHole(7, 6)
	for _, heuristic := range allHeuristics {
		heuristic := heuristic
		t.Run(heuristic, func(t *testing.T) {
			result := solveWith(t, n, clauses, heuristic)
			require.False(t, result.Satisfiable, "hole6 (7 pigeons, 6 holes) must be UNSAT")
		})
	}
}

func TestPigeonHoleFitsUnderEveryHeuristic(t *testing.T) {
	// pigeons == holes is always satisfiable (a perfect matching exists).
	n, clauses := pigeonHole(4, 4)
	for _, heuristic := range allHeuristics {
		heuristic := heuristic
		t.Run(heuristic, func(t *testing.T) {
			result := solveWith(t, n, clauses, heuristic)
			require.True(t, result.Satisfiable)
			require.True(t, solutionSatisfies(clauses, result.Assignment))
		})
	}
}

// solutionSatisfies reports whether assignment (one signed literal per
// variable, ascending) satisfies every clause.
func solutionSatisfies(clauses [][]int, assignment []int) bool {
	positive := make(map[int]bool, len(assignment))
	for _, lit := range assignment {
		positive[Var(lit)] = lit > 0
	}
clauseLoop:
	for _, c := range clauses {
		for _, lit := range c {
			v := Var(lit)
			want := lit > 0
			if positive[v] == want {
				continue clauseLoop
			}
		}
		return false
	}
	return true
}

func TestPlantedSatisfiableInstanceUnderEveryHeuristic(t *testing.T) {
	n, clauses := makePlantedSAT(1, 20, 60)
	for _, heuristic := range allHeuristics {
		heuristic := heuristic
		t.Run(heuristic, func(t *testing.T) {
			result := solveWith(t, n, clauses, heuristic)
			require.True(t, result.Satisfiable)
			require.True(t, solutionSatisfies(clauses, result.Assignment))
		})
	}
}

func TestAgreementAcrossHeuristics(t *testing.T) {
	instances := []struct {
		n       int
		clauses [][]int
	}{
		{1, [][]int{{1}, {-1}}},
		{3, [][]int{{1}, {-1, 2}, {-2, 3}}},
		{2, [][]int{{1, 2}, {-1, 2}, {-1, -2}}},
	}
	for _, inst := range instances {
		var first bool
		for i, heuristic := range allHeuristics {
			result := solveWith(t, inst.n, inst.clauses, heuristic)
			if i == 0 {
				first = result.Satisfiable
				continue
			}
			require.Equal(t, first, result.Satisfiable, "heuristic %s disagreed on verdict", heuristic)
		}
	}
}

func TestDeterminismExcludingRandom(t *testing.T) {
	n, clauses := pigeonHole(5, 4)
	for _, heuristic := range []string{"first", "max", "moms", "weighted", "up", "aupc"} {
		heuristic := heuristic
		t.Run(heuristic, func(t *testing.T) {
			a := solveWith(t, n, clauses, heuristic)
			b := solveWith(t, n, clauses, heuristic)
			require.Equal(t, a.Satisfiable, b.Satisfiable)
			require.Equal(t, a.Assignment, b.Assignment)
			require.Equal(t, a.Decisions, b.Decisions)
			require.Equal(t, a.Backtracks, b.Backtracks)
		})
	}
}

func TestPreprocessingNeutrality(t *testing.T) {
	n, clauses := pigeonHole(5, 4)
	// Introduce redundancy the pigeonhole generator itself never produces,
	// to exercise both dedup and subsumption without changing the verdict:
	// an exact duplicate of clause 0, and a superset of clause 1 (itself
	// plus an already-present literal from elsewhere in the formula).
	withRedundancy := append([][]int(nil), clauses...)
	withRedundancy = append(withRedundancy, append([]int(nil), clauses[0]...))
	superset := append(append([]int(nil), clauses[1]...), clauses[0][0])
	withRedundancy = append(withRedundancy, superset)

	baseline := solveWith(t, n, clauses, "first")

	for _, opts := range []Options{
		{Heuristic: "first"},
		{Heuristic: "first", Dedup: true},
		{Heuristic: "first", Subsume: true},
		{Heuristic: "first", Dedup: true, Subsume: true},
	} {
		result, err := Solve(context.Background(), n, withRedundancy, opts)
		require.NoError(t, err)
		require.Equal(t, baseline.Satisfiable, result.Satisfiable)
	}
}

func TestUnitPropagationIdempotence(t *testing.T) {
	store := NewStore(3, [][]int{{1}, {-1, 2}, {-2, 3}})
	stats := NewStats(3, nil)
	prop := NewPropagator(store, stats)
	for {
		if _, ok := prop.Step(); !ok {
			break
		}
	}
	before := []Value{store.VarValue(1), store.VarValue(2), store.VarValue(3)}
	if _, ok := prop.Step(); ok {
		t.Fatal("propagate at fixed point forced another assignment")
	}
	after := []Value{store.VarValue(1), store.VarValue(2), store.VarValue(3)}
	require.Equal(t, before, after)
}

func TestRollBackCoverageOnUnsat(t *testing.T) {
	n, clauses := pigeonHole(3, 2)
	store := NewStore(n, clauses)
	watch := BuildWatchIndex(clauses)
	stats := NewStats(n, nil)
	heuristic := FirstHeuristic{}
	engine := NewEngine(store, watch, heuristic, stats, nil)
	result, err := engine.Solve(context.Background())
	require.NoError(t, err)
	require.False(t, result.Satisfiable)
	require.Empty(t, engine.trail)
	require.Empty(t, engine.decisions)
}

func TestSoundnessBruteForceCrossCheck(t *testing.T) {
	// Small enough (N<=15) to brute-force cross-check both SAT and UNSAT
	// verdicts against exhaustive enumeration.
	cases := []struct {
		name    string
		n       int
		clauses [][]int
	}{
		{"sat-chain", 4, [][]int{{1}, {-1, 2}, {-2, 3}, {-3, -4}}},
		{"unsat-hole3-2", 6, nil}, // filled below
	}
	n3, c3 := pigeonHole(3, 2)
	cases[1].n = n3
	cases[1].clauses = c3

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := bruteForceSAT(tc.n, tc.clauses)
			result := solveWith(t, tc.n, tc.clauses, "first")
			require.Equal(t, want, result.Satisfiable)
			if result.Satisfiable {
				require.True(t, solutionSatisfies(tc.clauses, result.Assignment))
			}
		})
	}
}

// bruteForceSAT exhaustively checks every 2^n assignment. Only used in
// tests, and only for small n.
func bruteForceSAT(n int, clauses [][]int) bool {
	assignment := make([]bool, n+1)
	var try func(v int) bool
	try = func(v int) bool {
		if v > n {
			for _, c := range clauses {
				ok := false
				for _, lit := range c {
					val := assignment[Var(lit)]
					if lit < 0 {
						val = !val
					}
					if val {
						ok = true
						break
					}
				}
				if !ok {
					return false
				}
			}
			return true
		}
		assignment[v] = true
		if try(v + 1) {
			return true
		}
		assignment[v] = false
		return try(v + 1)
	}
	return try(1)
}

func TestSolveRejectsNonPositiveVariableCount(t *testing.T) {
	_, err := Solve(context.Background(), 0, nil, Options{})
	require.Error(t, err)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
}

func TestSolveRejectsOutOfRangeLiteral(t *testing.T) {
	_, err := Solve(context.Background(), 2, [][]int{{3}}, Options{})
	require.Error(t, err)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
}

func TestSolveRejectsUnknownHeuristic(t *testing.T) {
	_, err := Solve(context.Background(), 1, [][]int{{1}}, Options{Heuristic: "nonsense"})
	require.Error(t, err)
	var strategyErr *StrategyError
	require.ErrorAs(t, err, &strategyErr)
}

func TestSolveHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, clauses := pigeonHole(7, 6)
	_, err := Solve(ctx, n, clauses, Options{Heuristic: "first"})
	require.ErrorIs(t, err, context.Canceled)
}

// makePlantedSAT generates a satisfiable instance by fixing a random
// assignment first and then building clauses each guaranteed to contain at
// least one literal matching it, in the spirit of a randomized-testing
// planted-solution generator.
func makePlantedSAT(seed int64, numVars, numClauses int) (int, [][]int) {
	rng := newLCG(uint64(seed))
	assignment := make([]bool, numVars)
	for i := range assignment {
		assignment[i] = rng.next()%2 == 0
	}
	clauses := make([][]int, numClauses)
	for i := range clauses {
		size := int(rng.next()%3) + 1
		seen := make(map[int]bool, size)
		var c []int
		for len(c) < size {
			v := int(rng.next())%numVars + 1
			if seen[v] {
				continue
			}
			seen[v] = true
			lit := v
			if !assignment[v-1] {
				lit = -v
			}
			if rng.next()%4 == 0 {
				lit = -lit // occasionally flip so the clause isn't trivially satisfied by plan alone
			}
			c = append(c, lit)
		}
		// Guarantee satisfiability: force the first literal to match plan.
		v := Var(c[0])
		if assignment[v-1] {
			c[0] = v
		} else {
			c[0] = -v
		}
		clauses[i] = c
	}
	return numVars, clauses
}

// newLCG is a tiny deterministic linear congruential generator, used
// instead of math/rand so fixture generation stays reproducible without
// depending on the standard library's PRNG implementation details.
type lcg struct{ state uint64 }

func newLCG(seed uint64) *lcg { return &lcg{state: seed*2 + 1} }

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state >> 33
}
