package fdsolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *Context {
	return newContext(*DefaultConfig())
}

// TestNarrowIntTrailsAndRestores checks that Context.Restore undoes a
// NarrowInt exactly, returning the variable to its pre-narrowing domain.
func TestNarrowIntTrailsAndRestores(t *testing.T) {
	ctx := newTestContext()
	v := ctx.vars.addInt(NewIntRange(0, 10), false)

	cp := ctx.Checkpoint()
	require.NoError(t, ctx.NarrowInt(v, NewIntRange(3, 7)))
	assert.Equal(t, int64(3), ctx.vars.IntDomain(v).Min())
	assert.Equal(t, int64(7), ctx.vars.IntDomain(v).Max())

	ctx.Restore(cp)
	assert.Equal(t, int64(0), ctx.vars.IntDomain(v).Min())
	assert.Equal(t, int64(10), ctx.vars.IntDomain(v).Max())
}

// TestNarrowIntToEmptyReportsInconsistency checks that narrowing a
// domain to empty is reported as inconsistency rather than silently
// accepted.
func TestNarrowIntToEmptyReportsInconsistency(t *testing.T) {
	ctx := newTestContext()
	v := ctx.vars.addInt(NewIntRange(0, 10), false)
	err := ctx.NarrowInt(v, NewIntRange(0, 10).RemoveBelow(11))
	assert.ErrorIs(t, err, errInconsistency)
}

// TestRestoreIsNestable checks that two nested checkpoints restore
// correctly in LIFO order, as chronological backtracking requires.
func TestRestoreIsNestable(t *testing.T) {
	ctx := newTestContext()
	v := ctx.vars.addInt(NewIntRange(0, 100), false)

	cp1 := ctx.Checkpoint()
	require.NoError(t, ctx.NarrowInt(v, NewIntRange(0, 50)))

	cp2 := ctx.Checkpoint()
	require.NoError(t, ctx.NarrowInt(v, NewIntRange(0, 10)))
	assert.Equal(t, int64(10), ctx.vars.IntDomain(v).Max())

	ctx.Restore(cp2)
	assert.Equal(t, int64(50), ctx.vars.IntDomain(v).Max())

	ctx.Restore(cp1)
	assert.Equal(t, int64(100), ctx.vars.IntDomain(v).Max())
}

// TestNarrowIntNoopWhenDomainUnchanged checks that re-narrowing to an
// identical domain doesn't push a spurious trail entry (observable via
// the trail length being unchanged).
func TestNarrowIntNoopWhenDomainUnchanged(t *testing.T) {
	ctx := newTestContext()
	v := ctx.vars.addInt(NewIntRange(0, 10), false)
	before := ctx.trail.Len()
	require.NoError(t, ctx.NarrowInt(v, NewIntRange(0, 10)))
	assert.Equal(t, before, ctx.trail.Len())
}
