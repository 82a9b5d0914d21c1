package fdsolve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSolveSimpleMinimum solves the textbook two-variable LP:
//
//	minimize   x + y
//	subject to x + 2y >= 4
//	           3x + y >= 6
//	           x, y >= 0
//
// whose optimum is the corner where both rows are tight, x=1.6, y=1.2,
// objective=2.8 (the other corners, x=4,y=0 and x=0,y=6, score 4 and 6).
func TestSolveSimpleMinimum(t *testing.T) {
	p := &LpProblem{
		NumVars: 2,
		C:       []float64{1, 1},
		A: [][]float64{
			{1, 2},
			{3, 1},
		},
		Rel: []Relation{RelGE, RelGE},
		B:   []float64{4, 6},
		Lo:  []float64{0, 0},
		Up:  []float64{math.Inf(1), math.Inf(1)},
	}
	res := Solve(p, 1e-9, 1000)
	require.True(t, res.Feasible)
	require.True(t, res.Optimal)
	assert.InDelta(t, 2.8, res.Objective, 1e-6)
}

// TestSolveInfeasible checks a contradictory bound pair (x <= 1 and x >= 5)
// is correctly reported infeasible rather than silently returning a
// bogus point.
func TestSolveInfeasible(t *testing.T) {
	p := &LpProblem{
		NumVars: 1,
		C:       []float64{1},
		A: [][]float64{
			{1},
			{1},
		},
		Rel: []Relation{RelLE, RelGE},
		B:   []float64{1, 5},
		Lo:  []float64{math.Inf(-1)},
		Up:  []float64{math.Inf(1)},
	}
	res := Solve(p, 1e-9, 1000)
	assert.False(t, res.Feasible)
	assert.False(t, res.TimedOut, "a contradictory bound pair is confirmed infeasible, not merely cut off")
}

// TestSolveIterationCutoffIsNotConfirmedInfeasible checks a feasible
// problem given a one-iteration budget reports TimedOut rather than
// Feasible=false outright — runSimplex hitting maxIterations before
// phase 1 reaches optimality proves nothing about the true feasibility of
// the problem, and callers must not treat it as a confirmed Unsat.
func TestSolveIterationCutoffIsNotConfirmedInfeasible(t *testing.T) {
	p := &LpProblem{
		NumVars: 2,
		C:       []float64{1, 1},
		A: [][]float64{
			{1, 2},
			{3, 1},
		},
		Rel: []Relation{RelGE, RelGE},
		B:   []float64{4, 6},
		Lo:  []float64{0, 0},
		Up:  []float64{math.Inf(1), math.Inf(1)},
	}
	res := Solve(p, 1e-9, 0)
	assert.False(t, res.Feasible)
	assert.True(t, res.TimedOut, "a zero-iteration budget must report a cutoff, not a confirmed infeasibility")
}

// TestSolveEqualityConstraint exercises the artificial-variable phase-1
// path for an equality row, checking x+y=10, x<=4 forces y=6.
func TestSolveEqualityConstraint(t *testing.T) {
	p := &LpProblem{
		NumVars: 2,
		C:       []float64{0, 1},
		A: [][]float64{
			{1, 1},
		},
		Rel: []Relation{RelEQ},
		B:   []float64{10},
		Lo:  []float64{0, 0},
		Up:  []float64{4, math.Inf(1)},
	}
	res := Solve(p, 1e-9, 1000)
	require.True(t, res.Feasible)
	assert.InDelta(t, 6.0, res.X[1], 1e-6)
}

// TestSolveRespectsVariableUpperBound confirms a tight upper bound on a
// bounded variable is honored even when the objective alone would push
// it further (minimize -x with x capped at 5 should stop at 5, not run
// unbounded).
func TestSolveRespectsVariableUpperBound(t *testing.T) {
	p := &LpProblem{
		NumVars: 1,
		C:       []float64{-1},
		A:       [][]float64{{1}},
		Rel:     []Relation{RelLE},
		B:       []float64{100},
		Lo:      []float64{0},
		Up:      []float64{5},
	}
	res := Solve(p, 1e-9, 1000)
	require.True(t, res.Feasible)
	require.True(t, res.Optimal)
	assert.InDelta(t, 5.0, res.X[0], 1e-6)
	assert.InDelta(t, -5.0, res.Objective, 1e-6)
}
