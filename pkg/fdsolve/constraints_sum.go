package fdsolve

// sumConstraint propagates target = sum(vars...) by bounds consistency:
// target is bracketed by the sum of everyone's bounds, and each operand's
// bounds are tightened by subtracting the sum of everyone else's bounds
// from target's. Generalizes the teacher's binary propagatePlusConstraint
// (pkg/minikanren/fd_arith.go) to n-ary sums, the way the spec's
// constraints_sum.go module map entry calls for ("full recompute and an
// incremental variant that tracks running bound sums").
type sumConstraint struct {
	target VarId
	vars   []VarId

	// incremental caches the last-seen per-variable bounds so Propagate can
	// update the running lo/hi sums in O(1) per changed variable instead of
	// O(n) every call, once primed, by reading only the Context event log
	// entries posted since this propagator's own last call (eventMark)
	// rather than rescanning every operand. Correctness never depends on
	// the cache surviving any particular sequence of events: Context.Restore
	// re-posts a BoundChanged event for every variable a backtrack widens,
	// so a reverted operand is caught by the same incremental path as a
	// forward narrow.
	incremental bool
	primed      bool
	varIndex    map[VarId]int
	cachedLo    []Val
	cachedHi    []Val
	sumLo       Val
	sumHi       Val
	eventMark   int
}

// NewSum returns a Propagator enforcing target = sum(vars...), recomputing
// fully on every invocation.
func NewSum(target VarId, vars []VarId) Propagator {
	return &sumConstraint{target: target, vars: append([]VarId(nil), vars...)}
}

// NewIncrementalSum is like NewSum but maintains running bound sums across
// invocations, amortizing the cost for large var lists in tight propagation
// loops (spec §5: "an incremental variant for large sum constraints").
func NewIncrementalSum(target VarId, vars []VarId) Propagator {
	return &sumConstraint{target: target, vars: append([]VarId(nil), vars...), incremental: true}
}

func (c *sumConstraint) Vars() []VarId {
	return append([]VarId{c.target}, c.vars...)
}

func (c *sumConstraint) Name() string { return "sum" }

func (c *sumConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *sumConstraint) Propagate(ctx *Context) error {
	lo, hi := c.boundSums(ctx)

	if err := narrowLower(ctx, c.target, lo); err != nil {
		return err
	}
	if err := narrowUpper(ctx, c.target, hi); err != nil {
		return err
	}

	tLo, tHi := boundsOf(ctx, c.target)
	for i, v := range c.vars {
		// v's max can't exceed target's max minus the min of everyone else;
		// v's min can't fall below target's min minus the max of everyone else.
		otherLo := lo.Sub(c.boundOf(ctx, i, true))
		otherHi := hi.Sub(c.boundOf(ctx, i, false))
		if err := narrowLower(ctx, v, tLo.Sub(otherHi)); err != nil {
			return err
		}
		if err := narrowUpper(ctx, v, tHi.Sub(otherLo)); err != nil {
			return err
		}
	}
	return nil
}

// boundOf returns vars[i]'s own lower (useMin=true) or upper bound, read
// fresh so the per-variable exclusion above stays correct even though lo/hi
// were computed before any narrowing this round.
func (c *sumConstraint) boundOf(ctx *Context, i int, useMin bool) Val {
	vLo, vHi := boundsOf(ctx, c.vars[i])
	if useMin {
		return vLo
	}
	return vHi
}

// boundSums returns (sum of every operand's min, sum of every operand's
// max). When incremental caching is enabled and primed, reuses the running
// totals and applies only the delta for variables the Context event log
// reports as changed since this propagator's last call — never rescanning
// the full operand vector.
func (c *sumConstraint) boundSums(ctx *Context) (Val, Val) {
	if !c.incremental {
		return c.fullBoundSums(ctx)
	}
	if !c.primed {
		c.varIndex = make(map[VarId]int, len(c.vars))
		c.cachedLo = make([]Val, len(c.vars))
		c.cachedHi = make([]Val, len(c.vars))
		for i, v := range c.vars {
			c.varIndex[v] = i
			c.cachedLo[i], c.cachedHi[i] = boundsOf(ctx, v)
		}
		lo, hi := c.fullBoundSums(ctx)
		c.sumLo, c.sumHi = lo, hi
		c.primed = true
		c.eventMark = ctx.EventMark()
		return lo, hi
	}
	for _, ev := range ctx.EventsSince(c.eventMark) {
		i, ok := c.varIndex[ev.Var]
		if !ok {
			continue // the target or a variable this constraint doesn't watch
		}
		vLo, vHi := boundsOf(ctx, c.vars[i])
		if vLo.Cmp(c.cachedLo[i]) != 0 {
			c.sumLo = c.sumLo.Sub(c.cachedLo[i]).Add(vLo)
			c.cachedLo[i] = vLo
		}
		if vHi.Cmp(c.cachedHi[i]) != 0 {
			c.sumHi = c.sumHi.Sub(c.cachedHi[i]).Add(vHi)
			c.cachedHi[i] = vHi
		}
	}
	c.eventMark = ctx.EventMark()
	return c.sumLo, c.sumHi
}

func (c *sumConstraint) fullBoundSums(ctx *Context) (Val, Val) {
	lo, hi := IntVal(0), IntVal(0)
	for i, v := range c.vars {
		vLo, vHi := boundsOf(ctx, v)
		if i == 0 {
			lo, hi = vLo, vHi
			continue
		}
		lo = lo.Add(vLo)
		hi = hi.Add(vHi)
	}
	return lo, hi
}
