package fdsolve

// CompareOp names a binary comparison relation, per spec §5 ("comparison
// constraints: eq, neq, lt, leq, gt, geq").
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNeq
	OpLt
	OpLeq
	OpGt
	OpGeq
)

// compareConstraint propagates X <op> Y by bounds tightening (and, for
// OpNeq/OpEq when either side is a fixed int, a point removal/assignment).
// Grounded on the teacher's InequalityType / propagateLessThan family
// (pkg/minikanren/fd_ineq.go), generalized from the teacher's fixed
// [1..domainSize] bitset sweep to narrowing via IntDomain/FloatDomain's
// RemoveBelow/RemoveAbove, and from int-only to int-or-float via Val.
type compareConstraint struct {
	x, y VarId
	op   CompareOp
}

// NewCompare returns a Propagator enforcing x <op> y.
func NewCompare(x, y VarId, op CompareOp) Propagator {
	return &compareConstraint{x: x, y: y, op: op}
}

func (c *compareConstraint) Vars() []VarId               { return []VarId{c.x, c.y} }
func (c *compareConstraint) Name() string                { return "compare" }
func (c *compareConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *compareConstraint) Propagate(ctx *Context) error {
	switch c.op {
	case OpEq:
		return propagateEq(ctx, c.x, c.y)
	case OpNeq:
		return propagateNeq(ctx, c.x, c.y)
	case OpLt:
		return propagateOrder(ctx, c.x, c.y, true)
	case OpLeq:
		return propagateOrder(ctx, c.x, c.y, false)
	case OpGt:
		return propagateOrder(ctx, c.y, c.x, true)
	case OpGeq:
		return propagateOrder(ctx, c.y, c.x, false)
	}
	return nil
}

// boundsOf returns (lo, hi) of id as Vals, regardless of kind.
func boundsOf(ctx *Context, id VarId) (Val, Val) {
	return ctx.vars.Bounds(id)
}

// narrowLower raises id's lower bound to at least lo (a no-op if lo is
// already <= the current minimum).
func narrowLower(ctx *Context, id VarId, lo Val) error {
	if ctx.vars.Kind(id) == KindInt {
		return ctx.NarrowInt(id, ctx.vars.IntDomain(id).RemoveBelow(lo.AsInt()))
	}
	return ctx.NarrowFloat(id, ctx.vars.FloatDomainOf(id).RemoveBelow(lo.AsFloat()))
}

// narrowUpper lowers id's upper bound to at most hi.
func narrowUpper(ctx *Context, id VarId, hi Val) error {
	if ctx.vars.Kind(id) == KindInt {
		return ctx.NarrowInt(id, ctx.vars.IntDomain(id).RemoveAbove(hi.AsInt()))
	}
	return ctx.NarrowFloat(id, ctx.vars.FloatDomainOf(id).RemoveAbove(hi.AsFloat()))
}

// propagateOrder enforces x < y (strict) or x <= y, by bounds tightening
// in both directions: y's minimum can't fall below x's minimum, and x's
// maximum can't rise above y's maximum (adjusted by one grid step when
// strict).
func propagateOrder(ctx *Context, x, y VarId, strict bool) error {
	xLo, _ := boundsOf(ctx, x)
	yLoBound := xLo
	if strict {
		yLoBound = xLo.NextUp(ctx.cfg.FloatPrecisionDigits)
	}
	if err := narrowLower(ctx, y, yLoBound); err != nil {
		return err
	}

	_, yHi := boundsOf(ctx, y)
	xHiBound := yHi
	if strict {
		xHiBound = yHi.NextDown(ctx.cfg.FloatPrecisionDigits)
	}
	return narrowUpper(ctx, x, xHiBound)
}

// propagateEq enforces x == y by intersecting bounds both ways; exact
// value-set intersection for int domains is left to the finer-grained
// constraints_linear.go equality-of-singleton path, matching the teacher's
// own split between bounds inequality (fd_ineq.go) and exact arithmetic
// links (fd.go's arithmeticLinks, ArithmeticEquality).
func propagateEq(ctx *Context, x, y VarId) error {
	xLo, xHi := boundsOf(ctx, x)
	yLo, yHi := boundsOf(ctx, y)
	lo := xLo
	if yLo.Cmp(lo) > 0 {
		lo = yLo
	}
	hi := xHi
	if yHi.Cmp(hi) < 0 {
		hi = yHi
	}
	if err := narrowLower(ctx, x, lo); err != nil {
		return err
	}
	if err := narrowUpper(ctx, x, hi); err != nil {
		return err
	}
	if err := narrowLower(ctx, y, lo); err != nil {
		return err
	}
	return narrowUpper(ctx, y, hi)
}

// propagateNeq removes one fixed value from the other's domain once either
// side is fixed; mirrors the teacher's propagateNotEqual (fd_ineq.go),
// generalized to fire only when one side is a singleton since non-fixed
// disequality of two wide ranges prunes nothing.
func propagateNeq(ctx *Context, x, y VarId) error {
	if ctx.vars.IsFixed(x) && ctx.vars.Kind(x) == KindInt {
		v := ctx.vars.Value(x).AsInt()
		if ctx.vars.Kind(y) == KindInt {
			return ctx.NarrowInt(y, ctx.vars.IntDomain(y).Remove(v))
		}
	}
	if ctx.vars.IsFixed(y) && ctx.vars.Kind(y) == KindInt {
		v := ctx.vars.Value(y).AsInt()
		if ctx.vars.Kind(x) == KindInt {
			return ctx.NarrowInt(x, ctx.vars.IntDomain(x).Remove(v))
		}
	}
	return nil
}
