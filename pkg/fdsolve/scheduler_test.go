package fdsolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPropagator appends its own name to a shared log every time it
// runs, so tests can assert on dequeue order without depending on any
// particular constraint's real semantics.
type recordingPropagator struct {
	name     string
	priority PropagatorPriority
	vars     []VarId
	log      *[]string
}

func (p *recordingPropagator) Vars() []VarId { return p.vars }
func (p *recordingPropagator) Name() string  { return p.name }
func (p *recordingPropagator) Priority() PropagatorPriority {
	return p.priority
}
func (p *recordingPropagator) Propagate(ctx *Context) error {
	*p.log = append(*p.log, p.name)
	return nil
}

// TestSchedulerDequeuesBoundPriorityBeforeGlobal checks that when both a
// global and a bound-priority propagator are pending at once, the
// bound-priority one always runs first, per spec §4.3's two-tier
// ordering — the defect the maintainer's review found entirely missing.
func TestSchedulerDequeuesBoundPriorityBeforeGlobal(t *testing.T) {
	ctx := newTestContext()
	v := ctx.vars.addInt(NewIntRange(0, 10), false)

	var log []string
	global := &recordingPropagator{name: "global", priority: PriorityGlobal, vars: []VarId{v}, log: &log}
	bound := &recordingPropagator{name: "bound", priority: PriorityBound, vars: []VarId{v}, log: &log}

	// Register global first so a plain FIFO would run it first; priority
	// ordering must override that.
	ctx.sched.register(global)
	ctx.sched.register(bound)

	require.NoError(t, ctx.sched.runToFixedPoint(ctx, 0))
	require.Len(t, log, 2)
	assert.Equal(t, []string{"bound", "global"}, log)
}

// TestSchedulerDefaultsToGlobalPriority checks a Propagator that doesn't
// implement Prioritized (all_different, the review's own example of a
// global/complex constraint) is treated as PriorityGlobal, the
// conservative default, while a bound propagator like compare correctly
// advertises PriorityBound.
func TestSchedulerDefaultsToGlobalPriority(t *testing.T) {
	ctx := newTestContext()
	v := ctx.vars.addInt(NewIntRange(0, 10), false)

	ctx.sched.register(NewCompare(v, v, OpEq))
	require.Equal(t, PriorityBound, ctx.sched.priority[0])

	assert.Equal(t, PriorityGlobal, priorityOf(&allDifferentConstraint{}))
}
