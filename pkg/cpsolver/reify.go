package cpsolver

// Reify adds the two linear constraints that make y a 0/1 indicator for
// "Σ terms > 0", given that every term's variable is non-negative (true of
// every room-count variable in this module): y=0 forces the sum to zero,
// and y=1 forces the sum to be at least 1 (SPEC_FULL.md §4.E "Link y to x").
//
// bigM must be at least the maximum value the sum can take; the caller
// supplies it because only the caller knows the natural bound (e.g. a
// floor's total room count).
func (m *Model) Reify(terms []Term, y *Var, bigM int) {
	upper := append(append([]Term(nil), terms...), Term{Coeff: -bigM, Var: y})
	m.AddConstraint(NewLinear(upper, OpLE, 0))

	lower := append(append([]Term(nil), terms...), Term{Coeff: -1, Var: y})
	m.AddConstraint(NewLinear(lower, OpGE, 0))
}
