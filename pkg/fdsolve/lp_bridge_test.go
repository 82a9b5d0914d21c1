package fdsolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunLPRelaxationTightensBounds builds x,y in [0,100] under x+y<=10 and
// x<=y, whose LP-feasible region caps x at 5 and y at 10, and checks the
// root relaxation narrows both upper bounds accordingly without touching
// the lower bounds (which the LP region already permits at 0).
func TestRunLPRelaxationTightensBounds(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 100), false)
	y := ctx.vars.addInt(NewIntRange(0, 100), false)

	sum := NewLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10)
	order := NewLinear([]float64{1, -1}, []VarId{x, y}, RelLE, 0)

	err := runLPRelaxation(ctx, []Propagator{sum, order})
	require.NoError(t, err)

	assert.Equal(t, int64(0), ctx.vars.IntDomain(x).Min())
	assert.Equal(t, int64(5), ctx.vars.IntDomain(x).Max())
	assert.Equal(t, int64(0), ctx.vars.IntDomain(y).Min())
	assert.Equal(t, int64(10), ctx.vars.IntDomain(y).Max())
	assert.Equal(t, 1, ctx.stats.LPInvocations)
}

// TestRunLPRelaxationDetectsRootInfeasibility checks a contradictory pair
// of linear rows (x>=5 and x<=1) is reported as inconsistency before
// search ever starts.
func TestRunLPRelaxationDetectsRootInfeasibility(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 100), false)
	y := ctx.vars.addInt(NewIntRange(0, 100), false)

	lower := NewLinear([]float64{1, 0}, []VarId{x, y}, RelGE, 5)
	upper := NewLinear([]float64{1, 0}, []VarId{x, y}, RelLE, 1)

	err := runLPRelaxation(ctx, []Propagator{lower, upper})
	assert.ErrorIs(t, err, errInconsistency)
}

// TestRunLPRelaxationSkipsWhenDisabled checks the bridge is a clean no-op
// when the model turns LP relaxation off.
func TestRunLPRelaxationSkipsWhenDisabled(t *testing.T) {
	cfg := *DefaultConfig()
	cfg.LPEnabled = false
	ctx := newContext(cfg)
	x := ctx.vars.addInt(NewIntRange(0, 100), false)
	y := ctx.vars.addInt(NewIntRange(0, 100), false)

	sum := NewLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10)
	order := NewLinear([]float64{1, -1}, []VarId{x, y}, RelLE, 0)

	require.NoError(t, runLPRelaxation(ctx, []Propagator{sum, order}))
	assert.Equal(t, int64(100), ctx.vars.IntDomain(x).Max())
	assert.Equal(t, 0, ctx.stats.LPInvocations)
}

// TestRunLPRelaxationFallsBackSilentlyOnCutoff checks a feasible-but-slow
// relaxation that merely hits the iteration cutoff falls back to pure
// propagation (err == nil, domains untouched) rather than being wrongly
// reported as a confirmed Unsat — the distinction the maintainer's review
// flagged as missing between "proven infeasible" and "didn't finish".
func TestRunLPRelaxationFallsBackSilentlyOnCutoff(t *testing.T) {
	cfg := *DefaultConfig()
	cfg.LPMaxIterations = 0
	ctx := newContext(cfg)
	x := ctx.vars.addInt(NewIntRange(0, 100), false)
	y := ctx.vars.addInt(NewIntRange(0, 100), false)

	sum := NewLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10)
	order := NewLinear([]float64{1, -1}, []VarId{x, y}, RelLE, 0)

	err := runLPRelaxation(ctx, []Propagator{sum, order})
	require.NoError(t, err)
	assert.Equal(t, int64(100), ctx.vars.IntDomain(x).Max(), "cutoff must not tighten or reject, only skip")
}

// TestRunLPRelaxationSkipsTooFewRows checks the bridge declines to run at
// all with fewer than two linear rows, per its early-exit threshold.
func TestRunLPRelaxationSkipsTooFewRows(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 100), false)
	y := ctx.vars.addInt(NewIntRange(0, 100), false)

	sum := NewLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10)

	require.NoError(t, runLPRelaxation(ctx, []Propagator{sum}))
	assert.Equal(t, int64(100), ctx.vars.IntDomain(x).Max())
	assert.Equal(t, 0, ctx.stats.LPInvocations)
}
