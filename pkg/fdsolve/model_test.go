package fdsolve_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/solvecore/pkg/fdsolve"
)

func buildNQueens(m *fdsolve.Model, n int) []fdsolve.VarId {
	cols := m.Ints(n, 0, int64(n-1))
	m.AllDifferent(cols)
	diag1 := make([]fdsolve.VarId, n)
	diag2 := make([]fdsolve.VarId, n)
	for i := 0; i < n; i++ {
		d1 := m.Int(int64(-n), int64(n))
		d2 := m.Int(0, int64(2*n-2))
		m.Linear([]float64{1, -1}, []fdsolve.VarId{cols[i], d1}, fdsolve.RelEQ, float64(i))
		m.Linear([]float64{1, -1}, []fdsolve.VarId{cols[i], d2}, fdsolve.RelEQ, float64(-i))
		diag1[i], diag2[i] = d1, d2
	}
	m.AllDifferent(diag1)
	m.AllDifferent(diag2)
	return cols
}

// TestEightQueensHasNinetyTwoSolutions checks the well-known solution count
// for the classic 8x8 instance, exercising AllDifferent, Linear and the
// depth-first Enumerate path together.
func TestEightQueensHasNinetyTwoSolutions(t *testing.T) {
	m := fdsolve.NewModel()
	cols := buildNQueens(m, 8)
	_ = cols

	count := 0
	err := m.Enumerate(0, func(sol fdsolve.Solution) bool {
		count++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 92, count)
}

// TestEightQueensFirstSolutionIsValid spot-checks that Solve's single
// returned assignment actually satisfies non-attack: no two columns
// share a column, nor either diagonal.
func TestEightQueensFirstSolutionIsValid(t *testing.T) {
	const n = 8
	m := fdsolve.NewModel()
	cols := buildNQueens(m, n)

	sol, err := m.Solve()
	require.NoError(t, err)

	seenCol := map[int64]bool{}
	seenD1 := map[int64]bool{}
	seenD2 := map[int64]bool{}
	for i := 0; i < n; i++ {
		c := sol.Get(cols[i]).AsInt()
		require.False(t, seenCol[c], "column %d reused", c)
		seenCol[c] = true
		require.False(t, seenD1[c-int64(i)], "diagonal collision")
		seenD1[c-int64(i)] = true
		require.False(t, seenD2[c+int64(i)], "anti-diagonal collision")
		seenD2[c+int64(i)] = true
	}
}

// TestSendMoreMoney checks the unique solution to the classic cryptarithm.
func TestSendMoreMoney(t *testing.T) {
	m := fdsolve.NewModel()
	s, e, n, d := m.Int(1, 9), m.Int(0, 9), m.Int(0, 9), m.Int(0, 9)
	mo, o, r, y := m.Int(1, 9), m.Int(0, 9), m.Int(0, 9), m.Int(0, 9)
	m.AllDifferent([]fdsolve.VarId{s, e, n, d, mo, o, r, y})
	m.Linear(
		[]float64{1000, 100, 10, 1, 1000, 100, 10, 1, -10000, -1000, -100, -10, -1},
		[]fdsolve.VarId{s, e, n, d, mo, o, r, e, mo, o, n, e, y},
		fdsolve.RelEQ, 0,
	)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, int64(9), sol.Get(s).AsInt())
	assert.Equal(t, int64(5), sol.Get(e).AsInt())
	assert.Equal(t, int64(1), sol.Get(mo).AsInt())
	assert.Equal(t, int64(0), sol.Get(o).AsInt())
	assert.Equal(t, int64(8), sol.Get(r).AsInt())
	assert.Equal(t, int64(2), sol.Get(y).AsInt())
}

// TestFloatLinearMaximize checks a small LP-shaped float model: maximize
// x+y subject to x+y<=40 and 2x+y<=60, whose optimum is x=20,y=20,obj=40.
func TestFloatLinearMaximize(t *testing.T) {
	m := fdsolve.NewModel()
	x := m.Float(0, 40)
	y := m.Float(0, 40)
	obj := m.Float(0, 80)
	m.Linear([]float64{1, 1}, []fdsolve.VarId{x, y}, fdsolve.RelLE, 40)
	m.Linear([]float64{2, 1}, []fdsolve.VarId{x, y}, fdsolve.RelLE, 60)
	m.Linear([]float64{1, 1, -1}, []fdsolve.VarId{x, y, obj}, fdsolve.RelEQ, 0)

	sol, err := m.Maximize(obj)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, sol.Get(obj).AsFloat(), 1e-6)
}

// TestElementPicksMatchingValue checks Element ties array[index] to target
// and that Maximize picks the best feasible index under a side constraint.
func TestElementPicksMatchingValue(t *testing.T) {
	values := []int64{10, 25, 30, 45, 12}
	weights := []int64{2, 5, 6, 9, 3}

	m := fdsolve.NewModel()
	index := m.Int(0, int64(len(values)-1))
	value := m.Int(0, 100)
	weight := m.Int(0, 100)
	m.Element(values, index, value)
	m.Element(weights, index, weight)
	m.Leq(weight, m.Int(7, 7))

	sol, err := m.Maximize(value)
	require.NoError(t, err)
	// indices 0,1,2,4 have weight <= 7; the best value among those is 30 (index 2).
	assert.Equal(t, int64(30), sol.Get(value).AsInt())
	assert.Equal(t, int64(2), sol.Get(index).AsInt())
}

// TestElement2DPicksMatchingCell checks array[i][j] == target resolves to
// the correct row-major cell once i and j are fixed.
func TestElement2DPicksMatchingCell(t *testing.T) {
	grid := [][]int64{
		{1, 2, 3},
		{4, 5, 6},
	}

	m := fdsolve.NewModel()
	i := m.Int(1, 1)
	j := m.Int(2, 2)
	target := m.Int(0, 100)
	m.Element2D(grid, i, j, target)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, int64(6), sol.Get(target).AsInt())
}

// TestElement2DSearchFindsMaxCell checks Element2D composes correctly with
// search: maximizing target over a free i,j pair finds the grid's max cell.
func TestElement2DSearchFindsMaxCell(t *testing.T) {
	grid := [][]int64{
		{1, 9, 3},
		{4, 5, 2},
	}

	m := fdsolve.NewModel()
	i := m.Int(0, 1)
	j := m.Int(0, 2)
	target := m.Int(0, 100)
	m.Element2D(grid, i, j, target)

	sol, err := m.Maximize(target)
	require.NoError(t, err)
	assert.Equal(t, int64(9), sol.Get(target).AsInt())
}

// TestElement3DPicksMatchingCell checks array[i][j][k] == target resolves
// to the correct row-major cell once i, j, k are fixed.
func TestElement3DPicksMatchingCell(t *testing.T) {
	cube := [][][]int64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	}

	m := fdsolve.NewModel()
	i := m.Int(1, 1)
	j := m.Int(0, 0)
	k := m.Int(1, 1)
	target := m.Int(0, 100)
	m.Element3D(cube, i, j, k, target)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, int64(6), sol.Get(target).AsInt())
}

// TestUnsatisfiableModelReturnsNoSolution checks a directly contradictory
// pair of constraints surfaces ErrNoSolution rather than hanging or
// panicking.
func TestUnsatisfiableModelReturnsNoSolution(t *testing.T) {
	m := fdsolve.NewModel()
	x := m.Int(0, 10)
	y := m.Int(0, 10)
	m.Lt(x, y)
	m.Gt(x, y)

	_, err := m.Solve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fdsolve.ErrNoSolution))
}

// TestTimeoutReturnsBestIncumbent checks a deliberately microscopic
// deadline on a large search space surfaces KindTimeout rather than
// blocking, and that the error carries whatever incumbent (possibly
// none) was found before the deadline.
func TestTimeoutReturnsBestIncumbent(t *testing.T) {
	const n = 60
	m := fdsolve.NewModel(fdsolve.WithTimeout(1 * time.Millisecond))
	cols := buildNQueens(m, n)

	sol, err := m.Minimize(cols[0])
	require.Error(t, err)
	var se *fdsolve.SolverError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, fdsolve.KindTimeout, se.Kind)
	assert.Equal(t, sol, se.Best, "the Timeout error carries the same incumbent Minimize returned")
}
