package fdsolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReifiedLinearBFixedPostsDirectConstraint checks b fixed to 1 posts
// x+y<=10 directly and narrows y accordingly.
func TestReifiedLinearBFixedPostsDirectConstraint(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(8, 8), false)
	y := ctx.vars.addInt(NewIntRange(0, 20), false)
	b := ctx.vars.addInt(NewIntRange(1, 1), false)

	c := NewReifiedLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10, b)
	require.NoError(t, c.Propagate(ctx))

	assert.Equal(t, int64(0), ctx.vars.IntDomain(y).Min())
	assert.Equal(t, int64(2), ctx.vars.IntDomain(y).Max())
}

// TestReifiedLinearBZeroNegatesEqToNe checks b fixed to 0 with RelEQ posts
// the complementary RelNE constraint, excluding the single forbidden point.
func TestReifiedLinearBZeroNegatesEqToNe(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 10), false)
	y := ctx.vars.addInt(NewIntRange(4, 4), false)
	b := ctx.vars.addInt(NewIntRange(0, 0), false)

	c := NewReifiedLinear([]float64{1, 1}, []VarId{x, y}, RelEQ, 10, b)
	require.NoError(t, c.Propagate(ctx))

	assert.False(t, ctx.vars.IntDomain(x).Contains(6))
}

// TestReifiedLinearBZeroOnLEIsNoOp checks b fixed to 0 with RelLE (which has
// no representable negation in this engine) leaves the underlying variables
// untouched rather than erroring or fabricating a bound.
func TestReifiedLinearBZeroOnLEIsNoOp(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 20), false)
	y := ctx.vars.addInt(NewIntRange(0, 20), false)
	b := ctx.vars.addInt(NewIntRange(0, 0), false)

	c := NewReifiedLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10, b)
	require.NoError(t, c.Propagate(ctx))

	assert.Equal(t, int64(0), ctx.vars.IntDomain(x).Min())
	assert.Equal(t, int64(20), ctx.vars.IntDomain(x).Max())
}

// TestReifiedLinearEntailsTrueFixesB checks bounds that already guarantee
// x+y<=10 fix b to 1 without b being given a value up front.
func TestReifiedLinearEntailsTrueFixesB(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(0, 3), false)
	y := ctx.vars.addInt(NewIntRange(0, 3), false)
	b := ctx.vars.addInt(NewIntRange(0, 1), false)

	c := NewReifiedLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10, b)
	require.NoError(t, c.Propagate(ctx))

	fixed, val := boolFixed(ctx, b)
	require.True(t, fixed)
	assert.Equal(t, int64(1), val)
}

// TestReifiedLinearEntailsFalseFixesB checks bounds that already guarantee
// x+y>10 fix b to 0.
func TestReifiedLinearEntailsFalseFixesB(t *testing.T) {
	ctx := newTestContext()
	x := ctx.vars.addInt(NewIntRange(8, 8), false)
	y := ctx.vars.addInt(NewIntRange(8, 8), false)
	b := ctx.vars.addInt(NewIntRange(0, 1), false)

	c := NewReifiedLinear([]float64{1, 1}, []VarId{x, y}, RelLE, 10, b)
	require.NoError(t, c.Propagate(ctx))

	fixed, val := boolFixed(ctx, b)
	require.True(t, fixed)
	assert.Equal(t, int64(0), val)
}
