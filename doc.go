// Package dpll implements a backtracking Davis-Putnam-Logemann-Loveland SAT
// solver over propositional formulas in conjunctive normal form.
//
// The solver keeps one mutable CNF store and rolls decisions back in place
// on conflict rather than copying the formula per branch, augmented with
// unit propagation, a static literal->clause watch index used to localize
// conflict detection, optional duplicate-clause and subsumption
// preprocessing, and a choice of seven branching heuristics.
package dpll
