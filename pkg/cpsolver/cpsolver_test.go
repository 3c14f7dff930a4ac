package cpsolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDomain(t *testing.T, min, max int) Domain {
	t.Helper()
	d, err := NewDomain(min, max)
	require.NoError(t, err)
	return d
}

func TestLinearEquality_ExactPartition(t *testing.T) {
	m := NewModel()
	x := m.NewVar("x", mustDomain(t, 0, 5))
	y := m.NewVar("y", mustDomain(t, 0, 5))
	m.AddConstraint(NewLinear([]Term{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}, OpEQ, 5))

	solutions := Solve(context.Background(), m, 100)
	assert.NotEmpty(t, solutions)
	for _, sol := range solutions {
		assert.Equal(t, 5, sol.Value(x)+sol.Value(y))
	}
}

func TestLinearEquality_Infeasible(t *testing.T) {
	m := NewModel()
	x := m.NewVar("x", mustDomain(t, 0, 2))
	y := m.NewVar("y", mustDomain(t, 0, 2))
	m.AddConstraint(NewLinear([]Term{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}, OpEQ, 10))

	solutions := Solve(context.Background(), m, 5)
	assert.Empty(t, solutions)
}

func TestReify_IndicatorTracksSum(t *testing.T) {
	m := NewModel()
	x := m.NewVar("x", mustDomain(t, 0, 3))
	y := m.NewVar("y", mustDomain(t, 0, 1))
	m.Reify([]Term{{Coeff: 1, Var: x}}, y, 3)

	solutions := Solve(context.Background(), m, 100)
	require.NotEmpty(t, solutions)
	for _, sol := range solutions {
		if sol.Value(x) == 0 {
			assert.Equal(t, 0, sol.Value(y))
		} else {
			assert.Equal(t, 1, sol.Value(y))
		}
	}
}

func TestSolve_RespectsSolutionCap(t *testing.T) {
	m := NewModel()
	a := m.NewVar("a", mustDomain(t, 0, 9))
	b := m.NewVar("b", mustDomain(t, 0, 9))
	_ = a
	_ = b

	solutions := Solve(context.Background(), m, 3)
	assert.Len(t, solutions, 3)
}

func TestSolve_MinimizeOrdersSolutionsAscending(t *testing.T) {
	m := NewModel()
	shortage := m.NewVar("shortage", mustDomain(t, 0, 5))
	x := m.NewVar("x", mustDomain(t, 0, 5))
	m.AddConstraint(NewLinear([]Term{{Coeff: 1, Var: x}, {Coeff: 1, Var: shortage}}, OpEQ, 5))
	m.Minimize(shortage)

	solutions := Solve(context.Background(), m, 100)
	require.NotEmpty(t, solutions)
	for i := 1; i < len(solutions); i++ {
		assert.GreaterOrEqual(t, solutions[i].Objective, solutions[i-1].Objective)
	}
}

func TestSolve_ContextCancellationStopsEarly(t *testing.T) {
	m := NewModel()
	m.NewVar("a", mustDomain(t, 0, 100))
	m.NewVar("b", mustDomain(t, 0, 100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solutions := Solve(ctx, m, 1000)
	assert.Empty(t, solutions)
}
