package cpsolver

// Var is a model-level variable handle. It carries no mutable state itself —
// all domain state lives in a Store — so the same *Var can be shared safely
// across the Stores created while searching.
type Var struct {
	id   int
	name string
}

// ID returns the variable's index into a Store's domain slice.
func (v *Var) ID() int { return v.id }

func (v *Var) String() string { return v.name }

// Model collects the variables and constraints of one CSP instance plus an
// optional objective: the set of variables whose sum the search should
// prefer to minimize among equally-valid solutions (used by the single and
// eco solvers for their shortage objectives).
type Model struct {
	vars        []*Var
	bounds      []Domain
	constraints []Constraint
	minimize    []*Var
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewVar adds a variable with the given initial domain and returns its
// handle.
func (m *Model) NewVar(name string, domain Domain) *Var {
	v := &Var{id: len(m.vars), name: name}
	m.vars = append(m.vars, v)
	m.bounds = append(m.bounds, domain)
	return v
}

// AddConstraint registers c against the model.
func (m *Model) AddConstraint(c Constraint) {
	m.constraints = append(m.constraints, c)
}

// Minimize marks vars as the objective to minimize (summed), preferred when
// choosing among the solutions bounded search enumerates.
func (m *Model) Minimize(vars ...*Var) {
	m.minimize = append(m.minimize, vars...)
}

// NumVars returns the number of variables registered in the model.
func (m *Model) NumVars() int { return len(m.vars) }
