package cpsolver

import "fmt"

// Op is the comparison a LinearConstraint enforces between its weighted sum
// and RHS.
type Op int

const (
	// OpEQ requires the weighted sum to equal RHS exactly.
	OpEQ Op = iota
	// OpLE requires the weighted sum to be at most RHS.
	OpLE
	// OpGE requires the weighted sum to be at least RHS.
	OpGE
)

func (o Op) String() string {
	switch o {
	case OpEQ:
		return "="
	case OpLE:
		return "<="
	case OpGE:
		return ">="
	default:
		return "?"
	}
}

// Term is one coefficient*variable addend of a LinearConstraint.
type Term struct {
	Coeff int
	Var   *Var
}

// Constraint is anything a Store can be asked to propagate: tighten variable
// bounds until no further deduction is possible, or report the constraint
// violated.
type Constraint interface {
	// Propagate narrows st's domains until fixed point or detected
	// infeasibility (reported via the returned bool = false).
	Propagate(st *Store) bool
	String() string
}

// LinearConstraint enforces Σ Coeff·Var {=,≤,≥} RHS via bounds-consistency
// propagation (DESIGN.md "Documented simplifications": this is weaker
// than full arc consistency but sufficient for the small, mostly-0/1 models
// the room solvers build).
type LinearConstraint struct {
	Terms []Term
	Op    Op
	RHS   int
}

// NewLinear constructs a LinearConstraint from terms.
func NewLinear(terms []Term, op Op, rhs int) *LinearConstraint {
	return &LinearConstraint{Terms: terms, Op: op, RHS: rhs}
}

func (c *LinearConstraint) String() string {
	return fmt.Sprintf("linear(%d terms %s %d)", len(c.Terms), c.Op, c.RHS)
}

// Propagate implements bounds-consistency for a linear constraint: it
// computes, for each term, the min/max the rest of the sum allows and
// tightens that term's variable accordingly. Repeated externally (by
// Store.Propagate) until no constraint can narrow further.
func (c *LinearConstraint) Propagate(st *Store) bool {
	switch c.Op {
	case OpEQ:
		return c.propagateBound(st, true, true)
	case OpLE:
		return c.propagateBound(st, false, true)
	case OpGE:
		return c.propagateBound(st, true, false)
	default:
		return true
	}
}

// propagateBound tightens lower bounds when enforceLower is set (constraint
// implies a minimum for each term) and upper bounds when enforceUpper is
// set, given the current domains of every other term in the sum.
func (c *LinearConstraint) propagateBound(st *Store, enforceLower, enforceUpper bool) bool {
	n := len(c.Terms)
	for i := 0; i < n; i++ {
		term := c.Terms[i]
		restMin, restMax := 0, 0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			other := c.Terms[j]
			d := st.Domain(other.Var)
			lo, hi := other.Coeff*d.Min, other.Coeff*d.Max
			if lo > hi {
				lo, hi = hi, lo
			}
			restMin += lo
			restMax += hi
		}

		d := st.Domain(term.Var)
		if term.Coeff == 0 {
			continue
		}

		// term.Coeff*term.Var + rest {=,<=,>=} RHS
		// => term.Coeff*term.Var {=,<=,>=} RHS - rest
		var newMin, newMax = d.Min, d.Max
		if enforceUpper {
			limit := c.RHS - restMin
			bound := divFloor(limit, term.Coeff)
			if term.Coeff > 0 {
				if bound < newMax {
					newMax = bound
				}
			} else {
				if bound > newMin {
					newMin = bound
				}
			}
		}
		if enforceLower {
			limit := c.RHS - restMax
			bound := divCeil(limit, term.Coeff)
			if term.Coeff > 0 {
				if bound > newMin {
					newMin = bound
				}
			} else {
				if bound < newMax {
					newMax = bound
				}
			}
		}

		if !st.Tighten(term.Var, newMin, newMax) {
			return false
		}
	}
	return true
}

func divFloor(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func divCeil(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
