package fdsolve

import "time"

// checkpoint is an opaque restore point covering both the trail and the
// pending-propagation queue, per spec §4.2 ("checkpoint/restore must cover
// both the trail and the event queue, so a backtrack never leaves a stale
// propagator scheduled"). Returned by Context.Checkpoint, consumed by
// Context.Restore.
type checkpoint struct {
	trailLen int
	queueLen int
}

// Context is the single mutation surface handed to propagators and to the
// search engine: every domain change happens through it, so every change is
// trailed and every dependent propagator re-enqueued in the same place.
// Grounded on the teacher's FDStore (pkg/minikanren/fd.go), which bundles
// exactly this set of responsibilities (vars, trail, queue, mutation
// methods) behind one lock; this Context drops the teacher's mutex because
// the spec (§4.2, Non-goals) excludes parallel search within one model, so
// a single goroutine ever touches one Context.
type Context struct {
	vars   *VarStore
	trail  *Trail
	sched  *scheduler
	cfg    Config
	stats  *Stats
	deadline time.Time
	hasDeadline bool

	// events is the append-only log of every domain mutation (forward
	// narrowing and backtrack-driven widening alike), read via EventMark/
	// EventsSince by incremental propagators (constraints_sum.go) that
	// need to know which of their watched variables changed since their
	// last Propagate without rescanning every one of them.
	events []Event
}

func newContext(cfg Config) *Context {
	ctx := &Context{
		vars:  newVarStore(cfg.FloatPrecisionDigits),
		trail: newTrail(),
		sched: newScheduler(),
		cfg:   cfg,
		stats: newStats(),
	}
	if cfg.TimeoutMS > 0 {
		ctx.deadline = timeNowFunc().Add(time.Duration(cfg.TimeoutMS) * time.Millisecond)
		ctx.hasDeadline = true
	}
	return ctx
}

// timeNowFunc exists so tests can stub wall-clock time; production code
// always uses time.Now.
var timeNowFunc = time.Now

// Deadlined reports whether the configured timeout has elapsed.
func (c *Context) Deadlined() bool {
	return c.hasDeadline && timeNowFunc().After(c.deadline)
}

// Vars exposes the read-only variable store.
func (c *Context) Vars() *VarStore { return c.vars }

// Stats exposes the running statistics counters.
func (c *Context) Stats() *Stats { return c.stats }

// Checkpoint records the current trail and queue length.
func (c *Context) Checkpoint() checkpoint {
	return checkpoint{trailLen: c.trail.Len(), queueLen: c.sched.snapshotLen()}
}

// Restore undoes every domain change and discards every pending propagation
// scheduled since cp was taken. Every variable a reverted entry touches is
// re-notified and re-logged as a BoundChanged event, exactly as if it had
// been widened by an ordinary narrow call: a propagator that only trusts
// its own incrementally-cached bounds (rather than rescanning live domains
// every call) must see a backtrack's widening the same way it sees a
// forward narrowing, or its cache would stay wrongly tight after the
// undo.
func (c *Context) Restore(cp checkpoint) {
	touched := c.trail.undoTo(c.vars, cp.trailLen)
	c.sched.truncateTo(cp.queueLen)
	for _, v := range touched {
		c.sched.notify(v, BoundChanged)
		c.recordEvent(v, BoundChanged)
	}
	c.stats.recordTrail(c.trail.Len())
	c.stats.recordQueue(c.sched.snapshotLen())
}

// recordEvent appends v's mutation to the event log for EventsSince
// readers. Delta is left at its zero value: computing the exact
// single-value delta the Event doc describes is only well-defined for a
// change that narrows by exactly one value, and narrowing calls here
// (RemoveBelow/RemoveAbove/Fix, multi-value holes, bound restores) don't
// satisfy that in general — callers needing incremental behavior (the
// sum constraint) only need to know which variable changed, not by how
// much, since they re-read the live bound themselves for anything they
// touch.
func (c *Context) recordEvent(v VarId, kind EventKind) {
	c.events = append(c.events, Event{Var: v, Kind: kind})
}

// EventMark returns a cursor into the event log usable with EventsSince,
// the same "how far have I already seen" token an incremental propagator
// keeps between Propagate calls.
func (c *Context) EventMark() int { return len(c.events) }

// EventsSince returns every event recorded from mark onward, in order.
func (c *Context) EventsSince(mark int) []Event {
	if mark >= len(c.events) {
		return nil
	}
	return c.events[mark:]
}

// NarrowInt replaces id's integer domain with nd, trailing the displaced
// domain and enqueuing every propagator watching id if nd actually changed
// anything. Returns errInconsistency if nd is empty.
func (c *Context) NarrowInt(id VarId, nd IntDomain) error {
	old := c.vars.slots[id].intDom
	if nd.IsEmpty() {
		return errInconsistency
	}
	if sameIntDomain(old, nd) {
		return nil
	}
	c.trail.pushInt(id, old)
	c.vars.slots[id].intDom = nd
	c.stats.recordTrail(c.trail.Len())
	kind := classifyIntChange(old, nd)
	c.sched.notify(id, kind)
	c.recordEvent(id, kind)
	return nil
}

// NarrowFloat replaces id's float domain with nd, analogous to NarrowInt.
func (c *Context) NarrowFloat(id VarId, nd FloatDomain) error {
	old := c.vars.slots[id].floatDom
	if nd.IsEmpty() {
		return errInconsistency
	}
	if old.lo == nd.lo && old.hi == nd.hi {
		return nil
	}
	c.trail.pushFloat(id, old)
	c.vars.slots[id].floatDom = nd
	c.stats.recordTrail(c.trail.Len())
	kind := BoundChanged
	if nd.IsSingleton() {
		kind = FixedToValue
	}
	c.sched.notify(id, kind)
	c.recordEvent(id, kind)
	return nil
}

// Propagate drains the scheduler to a fixed point, respecting the
// configured per-node propagation cap.
func (c *Context) Propagate() error {
	return c.sched.runToFixedPoint(c, c.cfg.PropagationCapPerNode)
}

// Register adds a propagator to the scheduler, scheduling it for an
// initial run.
func (c *Context) Register(p Propagator) {
	c.sched.register(p)
}

func sameIntDomain(a, b IntDomain) bool {
	if a.Size() != b.Size() {
		return false
	}
	return a.Min() == b.Min() && a.Max() == b.Max() && a.Size() == b.Size()
}

func classifyIntChange(old, nd IntDomain) EventKind {
	if nd.IsSingleton() {
		return FixedToValue
	}
	if old.Min() != nd.Min() || old.Max() != nd.Max() {
		return BoundChanged
	}
	return DomainShrunk
}
