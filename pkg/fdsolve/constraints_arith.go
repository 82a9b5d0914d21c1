package fdsolve

// ArithOp names a ternary arithmetic relation z = x <op> y, per spec §5
// ("arithmetic constraints: +, -, *, /, mod over like-kinded operands").
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
)

// arithConstraint propagates z = x <op> y by interval bounds arithmetic,
// every round until fixed point. Add and Sub narrow all three variables
// (z from x,y; x from z,y; y from z,x). Mul narrows z, and narrows x (or y)
// from z only while the other factor's interval excludes zero. Div narrows
// z only. Mod narrows z only once x and y are both fixed. Grounded on the
// teacher's propagatePlusConstraint / propagateMultiplyConstraint /
// propagateMinusConstraint / propagateQuotientConstraint /
// propagateModuloConstraint (pkg/minikanren/fd_arith.go), generalized from
// the teacher's singleton-only case ("only narrows z once x and y are both
// fixed") to interval bounds for every op except mod, and from int-only to
// int-or-float via Val.
type arithConstraint struct {
	x, y, z VarId
	op      ArithOp
}

// NewArith returns a Propagator enforcing z = x <op> y.
func NewArith(x, y, z VarId, op ArithOp) Propagator {
	return &arithConstraint{x: x, y: y, z: z, op: op}
}

func (c *arithConstraint) Vars() []VarId               { return []VarId{c.x, c.y, c.z} }
func (c *arithConstraint) Name() string                { return "arith" }
func (c *arithConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *arithConstraint) Propagate(ctx *Context) error {
	xLo, xHi := boundsOf(ctx, c.x)
	yLo, yHi := boundsOf(ctx, c.y)
	zLo, zHi := boundsOf(ctx, c.z)

	switch c.op {
	case ArithAdd:
		if err := narrowLower(ctx, c.z, xLo.Add(yLo)); err != nil {
			return err
		}
		if err := narrowUpper(ctx, c.z, xHi.Add(yHi)); err != nil {
			return err
		}
		if err := narrowLower(ctx, c.x, zLo.Sub(yHi)); err != nil {
			return err
		}
		if err := narrowUpper(ctx, c.x, zHi.Sub(yLo)); err != nil {
			return err
		}
		if err := narrowLower(ctx, c.y, zLo.Sub(xHi)); err != nil {
			return err
		}
		return narrowUpper(ctx, c.y, zHi.Sub(xLo))

	case ArithSub:
		if err := narrowLower(ctx, c.z, xLo.Sub(yHi)); err != nil {
			return err
		}
		if err := narrowUpper(ctx, c.z, xHi.Sub(yLo)); err != nil {
			return err
		}
		if err := narrowLower(ctx, c.x, zLo.Add(yLo)); err != nil {
			return err
		}
		if err := narrowUpper(ctx, c.x, zHi.Add(yHi)); err != nil {
			return err
		}
		if err := narrowLower(ctx, c.y, xLo.Sub(zHi)); err != nil {
			return err
		}
		return narrowUpper(ctx, c.y, xHi.Sub(zLo))

	case ArithMul:
		return propagateMul(ctx, c.x, c.y, c.z, xLo, xHi, yLo, yHi, zLo, zHi)

	case ArithDiv:
		return propagateDiv(ctx, c.x, c.y, c.z, xLo, xHi, yLo, yHi)

	case ArithMod:
		return propagateModFixedPoint(ctx, c.x, c.y, c.z)
	}
	return nil
}

// mulCorners returns the min and max of the four corner products of the two
// intervals, the standard interval-multiplication rule.
func mulCorners(xLo, xHi, yLo, yHi Val) (Val, Val) {
	corners := []Val{xLo.Mul(yLo), xLo.Mul(yHi), xHi.Mul(yLo), xHi.Mul(yHi)}
	lo, hi := corners[0], corners[0]
	for _, v := range corners[1:] {
		if v.Cmp(lo) < 0 {
			lo = v
		}
		if v.Cmp(hi) > 0 {
			hi = v
		}
	}
	return lo, hi
}

func propagateMul(ctx *Context, x, y, z VarId, xLo, xHi, yLo, yHi, zLo, zHi Val) error {
	lo, hi := mulCorners(xLo, xHi, yLo, yHi)
	if err := narrowLower(ctx, z, lo); err != nil {
		return err
	}
	if err := narrowUpper(ctx, z, hi); err != nil {
		return err
	}
	// Division to recover x and y bounds is only sound when the divisor's
	// interval doesn't straddle zero; skip otherwise (the teacher's
	// equivalent is also one-directional, fd_arith.go's propagateMultiplyConstraint).
	if yLo.Cmp(IntVal(0)) > 0 || yHi.Cmp(IntVal(0)) < 0 {
		lo, hi := divCorners(zLo, zHi, yLo, yHi)
		if err := narrowLower(ctx, x, lo); err != nil {
			return err
		}
		if err := narrowUpper(ctx, x, hi); err != nil {
			return err
		}
	}
	if xLo.Cmp(IntVal(0)) > 0 || xHi.Cmp(IntVal(0)) < 0 {
		lo, hi := divCorners(zLo, zHi, xLo, xHi)
		if err := narrowLower(ctx, y, lo); err != nil {
			return err
		}
		if err := narrowUpper(ctx, y, hi); err != nil {
			return err
		}
	}
	return nil
}

func divCorners(zLo, zHi, dLo, dHi Val) (Val, Val) {
	corners := []Val{zLo.Div(dLo), zLo.Div(dHi), zHi.Div(dLo), zHi.Div(dHi)}
	lo, hi := corners[0], corners[0]
	for _, v := range corners[1:] {
		if v.Cmp(lo) < 0 {
			lo = v
		}
		if v.Cmp(hi) > 0 {
			hi = v
		}
	}
	return lo, hi
}

// propagateDiv enforces z = x / y, actively excluding 0 from y's domain
// first (per spec §4.4, "division guards against zero") rather than
// assuming some earlier guard already posted it: Val.Div panics on a zero
// divisor, so every ArithDiv propagator removes the single point itself
// on every call, which is idempotent and cheap once 0 is already gone.
// Float domains can't have a single point excised from a continuous
// interval, so the exclusion only applies to integer y; propagateMod's
// fixed-point check (propagateModFixedPoint) already rejects a fixed
// zero float divisor explicitly, and a non-fixed float interval
// straddling zero simply skips the corner-narrowing below, same as
// propagateMul does for a divisor interval straddling zero.
func propagateDiv(ctx *Context, x, y, z VarId, xLo, xHi, yLo, yHi Val) error {
	if ctx.vars.Kind(y) == KindInt {
		if err := ctx.NarrowInt(y, ctx.vars.IntDomain(y).Remove(0)); err != nil {
			return err
		}
		yLo, yHi = boundsOf(ctx, y)
	}
	if yLo.Cmp(IntVal(0)) > 0 || yHi.Cmp(IntVal(0)) < 0 {
		lo, hi := divCorners(xLo, xHi, yLo, yHi)
		if err := narrowLower(ctx, z, lo); err != nil {
			return err
		}
		if err := narrowUpper(ctx, z, hi); err != nil {
			return err
		}
	}
	return nil
}

// propagateModFixedPoint narrows z = x mod y only in the fully-fixed case,
// mirroring the teacher's propagateModuloConstraint exactly (fd_arith.go):
// modulo's non-monotonic, sign-dependent range makes general bounds
// narrowing unsound without a much larger case split the teacher itself
// never attempts either.
func propagateModFixedPoint(ctx *Context, x, y, z VarId) error {
	if !ctx.vars.IsFixed(x) || !ctx.vars.IsFixed(y) {
		return nil
	}
	xv := ctx.vars.Value(x)
	yv := ctx.vars.Value(y)
	if yv.AsFloat() == 0 {
		return errInconsistency
	}
	return narrowToFixed(ctx, z, xv.Mod(yv))
}

func narrowToFixed(ctx *Context, id VarId, v Val) error {
	if ctx.vars.Kind(id) == KindInt {
		return ctx.NarrowInt(id, ctx.vars.IntDomain(id).Fix(v.AsInt()))
	}
	return ctx.NarrowFloat(id, ctx.vars.FloatDomainOf(id).Fix(v.AsFloat()))
}
