package cpsolver

import (
	"context"
	"sort"
)

// Solution is one fully-instantiated assignment, indexed by Var.ID(), plus
// the summed value of the model's minimize set at the time it was found.
type Solution struct {
	values    []int
	Objective int
}

// Value returns v's value in this solution.
func (s Solution) Value(v *Var) int { return s.values[v.id] }

// Solve runs a depth-first search with first-fail variable ordering,
// collecting up to maxSolutions satisfying assignments. It returns early if
// ctx is cancelled or its deadline passes — a soft failure under
// SPEC_FULL.md §5 ("Timeouts are soft-failures... not errors"): whatever
// solutions were already found are returned with no error.
//
// Solutions are returned sorted by ascending Objective, so callers that want
// "least shortage first" get it for free; ties preserve discovery order.
func Solve(ctx context.Context, m *Model, maxSolutions int) []Solution {
	root := NewStore(m)
	if !root.Propagate() {
		return nil
	}

	var solutions []Solution
	var walk func(st *Store) bool // returns false to stop the whole search
	walk = func(st *Store) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if len(solutions) >= maxSolutions {
			return false
		}

		v := st.firstFailVar()
		if v == nil {
			solutions = append(solutions, Solution{values: st.Values(), Objective: st.objective()})
			return len(solutions) < maxSolutions
		}

		d := st.Domain(v)
		for val := d.Min; val <= d.Max; val++ {
			branch := st.Clone()
			if !branch.Tighten(v, val, val) {
				continue
			}
			if !branch.Propagate() {
				continue
			}
			if !walk(branch) {
				return false
			}
		}
		return true
	}
	walk(root)

	sort.SliceStable(solutions, func(i, j int) bool {
		return solutions[i].Objective < solutions[j].Objective
	})
	return solutions
}
