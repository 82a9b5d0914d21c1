package fdsolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLinearConstraintNarrowsBothSides checks x+y=10 with x restricted to
// [0,3] propagates y down to [7,10], exercising both the lower and upper
// narrowing branch of linearConstraint.Propagate in one call.
func TestLinearConstraintNarrowsBothSides(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 3), false)
	y := ctx.vars.addInt(NewIntRange(0, 10), false)

	c := NewLinear([]float64{1, 1}, []VarId{x, y}, RelEQ, 10)
	require.NoError(t, c.Propagate(ctx))

	assert.Equal(t, int64(7), ctx.vars.IntDomain(y).Min())
	assert.Equal(t, int64(10), ctx.vars.IntDomain(y).Max())
	// x's own window is unaffected since [0,3] already fits.
	assert.Equal(t, int64(0), ctx.vars.IntDomain(x).Min())
	assert.Equal(t, int64(3), ctx.vars.IntDomain(x).Max())
}

// TestLinearConstraintNegativeCoefficientFlipsWindow checks x-y=0 with x
// fixed to [5,5] forces y to [5,5] too, exercising the negative-coefficient
// window-flip branch.
func TestLinearConstraintNegativeCoefficientFlipsWindow(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(5, 5), false)
	y := ctx.vars.addInt(NewIntRange(0, 20), false)

	c := NewLinear([]float64{1, -1}, []VarId{x, y}, RelEQ, 0)
	require.NoError(t, c.Propagate(ctx))

	assert.Equal(t, int64(5), ctx.vars.IntDomain(y).Min())
	assert.Equal(t, int64(5), ctx.vars.IntDomain(y).Max())
}

// TestLinearConstraintDetectsInconsistency checks x+y<=5 with both x and y
// fixed above the budget is rejected rather than silently narrowed.
func TestLinearConstraintDetectsInconsistency(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(3, 3), false)
	y := ctx.vars.addInt(NewIntRange(4, 4), false)

	c := NewLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 5)
	assert.ErrorIs(t, c.Propagate(ctx), errInconsistency)
}

// TestLinearConstraintRepeatedVariableIsSoundButNotMaximallyTight checks a
// row that references the same variable twice (as SEND+MORE=MONEY's letter
// encoding does) narrows toward the feasible range without ever excluding
// a true solution: x+x=10 over x in [0,20] bounds-propagates to [0,10], a
// sound but not maximally tight result, since the two occurrences are
// narrowed independently using bounds taken before either narrowing is
// applied rather than as one aggregated 2*x term. Repeated Propagate calls
// reach a fixed point at [0,10] rather than converging to the true unique
// answer x=5; AllDifferent/search elsewhere is what ultimately resolves it
// in a real model.
func TestLinearConstraintRepeatedVariableIsSoundButNotMaximallyTight(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 20), false)

	c := NewLinear([]float64{1, 1}, []VarId{x, x}, RelEQ, 10)
	require.NoError(t, c.Propagate(ctx))
	assert.Equal(t, int64(0), ctx.vars.IntDomain(x).Min())
	assert.Equal(t, int64(10), ctx.vars.IntDomain(x).Max())

	// A second pass reaches a fixed point rather than tightening further.
	require.NoError(t, c.Propagate(ctx))
	assert.Equal(t, int64(0), ctx.vars.IntDomain(x).Min())
	assert.Equal(t, int64(10), ctx.vars.IntDomain(x).Max())
}

func TestNewLinearPanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewLinear([]float64{1, 2}, []VarId{0}, RelEQ, 0)
	})
}

// TestLinearNEExcludesForcedPointOnce checks x+y != 10 with y fixed to 4
// removes the single forbidden value 6 from x's otherwise-untouched domain.
func TestLinearNEExcludesForcedPointOnce(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 10), false)
	y := ctx.vars.addInt(NewIntRange(4, 4), false)

	c := NewLinear([]float64{1, 1}, []VarId{x, y}, RelNE, 10)
	require.NoError(t, c.Propagate(ctx))

	assert.False(t, ctx.vars.IntDomain(x).Contains(6))
	assert.True(t, ctx.vars.IntDomain(x).Contains(5))
	assert.True(t, ctx.vars.IntDomain(x).Contains(7))
}

// TestLinearNEBothFixedEqualToRhsIsInconsistent checks x+y != 10 with both
// terms already pinned to a sum of exactly 10 is rejected.
func TestLinearNEBothFixedEqualToRhsIsInconsistent(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(6, 6), false)
	y := ctx.vars.addInt(NewIntRange(4, 4), false)

	c := NewLinear([]float64{1, 1}, []VarId{x, y}, RelNE, 10)
	assert.ErrorIs(t, c.Propagate(ctx), errInconsistency)
}

// TestLinearNEBothFixedNotEqualToRhsIsSatisfied checks x+y != 10 with both
// terms pinned to a sum other than 10 is already satisfied, a no-op.
func TestLinearNEBothFixedNotEqualToRhsIsSatisfied(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(1, 1), false)
	y := ctx.vars.addInt(NewIntRange(1, 1), false)

	c := NewLinear([]float64{1, 1}, []VarId{x, y}, RelNE, 10)
	require.NoError(t, c.Propagate(ctx))
	assert.Equal(t, int64(1), ctx.vars.IntDomain(x).Min())
	assert.Equal(t, int64(1), ctx.vars.IntDomain(x).Max())
}

// TestLinearNESkipsFloatPointExclusion checks x+y != 10 with y fixed and x a
// float-kinded variable leaves x's continuous interval untouched, since a
// single point can't be excised from it.
func TestLinearNESkipsFloatPointExclusion(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addFloat(NewFloatInterval(0, 10, 2), false)
	y := ctx.vars.addInt(NewIntRange(4, 4), false)

	c := NewLinear([]float64{1, 1}, []VarId{x, y}, RelNE, 10)
	require.NoError(t, c.Propagate(ctx))

	dom := ctx.vars.FloatDomainOf(x)
	assert.Equal(t, 0.0, dom.Min())
	assert.Equal(t, 10.0, dom.Max())
}
