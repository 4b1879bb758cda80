package dpll

import "math/rand"

// Heuristic chooses the next decision variable from the currently
// undefined candidates, which are always passed in ascending variable-id
// order so that every deterministic heuristic breaks ties the same way:
// lowest candidate id wins.
type Heuristic interface {
	Name() string
	Select(store *Store, stats *Stats, candidates []int) int
}

// ParseHeuristic resolves a heuristic name from the CLI/Options surface.
// seed is only consulted for "random".
func ParseHeuristic(name string, seed int64) (Heuristic, error) {
	switch name {
	case "", "first":
		return FirstHeuristic{}, nil
	case "random":
		return NewRandomHeuristic(seed), nil
	case "max":
		return MaxHeuristic{}, nil
	case "moms":
		return MOMSHeuristic{}, nil
	case "weighted":
		return WeightedHeuristic{}, nil
	case "up":
		return UPHeuristic{}, nil
	case "aupc":
		return AUPCHeuristic{}, nil
	default:
		return nil, &StrategyError{Name: name}
	}
}

// FirstHeuristic picks the lowest-id undefined variable.
type FirstHeuristic struct{}

func (FirstHeuristic) Name() string { return "first" }

func (FirstHeuristic) Select(store *Store, stats *Stats, candidates []int) int {
	return candidates[0]
}

// RandomHeuristic picks uniformly among the undefined variables, using an
// explicitly seeded RNG rather than an unseeded process-global one so that
// a run is reproducible given its seed.
type RandomHeuristic struct {
	rng *rand.Rand
}

// NewRandomHeuristic returns a RandomHeuristic seeded with seed.
func NewRandomHeuristic(seed int64) *RandomHeuristic {
	return &RandomHeuristic{rng: rand.New(rand.NewSource(seed))}
}

func (h *RandomHeuristic) Name() string { return "random" }

func (h *RandomHeuristic) Select(store *Store, stats *Stats, candidates []int) int {
	return candidates[h.rng.Intn(len(candidates))]
}

// argmaxByID returns the candidate with the highest score, breaking ties by
// lowest id. candidates must already be in ascending id order, so the
// first candidate to reach the best score keeps it (a later equal score
// never replaces it).
func argmaxByID(candidates []int, score func(v int) float64) int {
	best := candidates[0]
	bestScore := score(best)
	for _, v := range candidates[1:] {
		if s := score(v); s > bestScore {
			best = v
			bestScore = s
		}
	}
	return best
}

// nonSatisfiedClauses yields the indices of clauses not currently satisfied.
func nonSatisfiedClauses(store *Store) []int {
	open := make([]int, 0, len(store.Clauses))
	for i := range store.Clauses {
		if !store.IsSatisfied(i) {
			open = append(open, i)
		}
	}
	return open
}

// MaxHeuristic scores a variable by its unsigned occurrence count across
// every not-yet-satisfied clause.
type MaxHeuristic struct{}

func (MaxHeuristic) Name() string { return "max" }

func (MaxHeuristic) Select(store *Store, stats *Stats, candidates []int) int {
	open := nonSatisfiedClauses(store)
	counts := make(map[int]int, len(candidates))
	for _, ci := range open {
		for _, lit := range store.Clauses[ci] {
			counts[Var(lit)]++
		}
	}
	return argmaxByID(candidates, func(v int) float64 { return float64(counts[v]) })
}

// MOMSHeuristic scores a variable by its occurrence count restricted to
// clauses whose open-size equals the minimum open-size over all
// not-yet-satisfied clauses (Maximum Occurrences in clauses of Minimum
// Size).
type MOMSHeuristic struct{}

func (MOMSHeuristic) Name() string { return "moms" }

func (MOMSHeuristic) Select(store *Store, stats *Stats, candidates []int) int {
	open := nonSatisfiedClauses(store)
	if len(open) == 0 {
		return candidates[0]
	}
	minSize := store.OpenSize(open[0])
	for _, ci := range open[1:] {
		if sz := store.OpenSize(ci); sz < minSize {
			minSize = sz
		}
	}
	counts := make(map[int]int, len(candidates))
	for _, ci := range open {
		if store.OpenSize(ci) != minSize {
			continue
		}
		for _, lit := range store.Clauses[ci] {
			counts[Var(lit)]++
		}
	}
	return argmaxByID(candidates, func(v int) float64 { return float64(counts[v]) })
}

// WeightedHeuristic implements a Jeroslow-Wang-style score: for each
// not-yet-satisfied clause K containing the variable, add 2^(-open-size(K)).
type WeightedHeuristic struct{}

func (WeightedHeuristic) Name() string { return "weighted" }

func (WeightedHeuristic) Select(store *Store, stats *Stats, candidates []int) int {
	open := nonSatisfiedClauses(store)
	weights := make(map[int]float64, len(candidates))
	for _, ci := range open {
		w := 1.0 / float64(int64(1)<<uint(store.OpenSize(ci)))
		seen := make(map[int]bool, len(store.Clauses[ci]))
		for _, lit := range store.Clauses[ci] {
			v := Var(lit)
			if seen[v] {
				continue
			}
			seen[v] = true
			weights[v] += w
		}
	}
	return argmaxByID(candidates, func(v int) float64 { return weights[v] })
}

// UPHeuristic scores a variable by how many times it has been forced by
// unit propagation over the lifetime of the solver.
type UPHeuristic struct{}

func (UPHeuristic) Name() string { return "up" }

func (UPHeuristic) Select(store *Store, stats *Stats, candidates []int) int {
	return argmaxByID(candidates, func(v int) float64 { return float64(stats.UPCount(v)) })
}

// AUPCHeuristic ("appearances in unsatisfied pair clauses") scores a
// variable by its occurrence count restricted to not-yet-satisfied clauses
// whose open-size is exactly 2.
type AUPCHeuristic struct{}

func (AUPCHeuristic) Name() string { return "aupc" }

func (AUPCHeuristic) Select(store *Store, stats *Stats, candidates []int) int {
	counts := make(map[int]int, len(candidates))
	for i := range store.Clauses {
		if store.IsSatisfied(i) || store.OpenSize(i) != 2 {
			continue
		}
		for _, lit := range store.Clauses[i] {
			counts[Var(lit)]++
		}
	}
	return argmaxByID(candidates, func(v int) float64 { return float64(counts[v]) })
}
