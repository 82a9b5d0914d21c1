package fdsolve

import "math"

// linearConstraint propagates sum(coeffs[i] * vars[i]) <rel> rhs by bounds
// consistency, the weighted generalization of constraints_sum.go. It also
// implements LinearView (propagator.go) so the LP bridge (lp_bridge.go) can
// extract it directly into a simplex row — the spec's single richest
// constraint for exercising gonum's linear algebra stack (SPEC_FULL.md's
// DOMAIN STACK). There is no teacher equivalent; styled in the same
// corner-arithmetic idiom as constraints_arith.go/constraints_sum.go.
type linearConstraint struct {
	coeffs []float64
	vars   []VarId
	rel    Relation
	rhs    float64
}

// NewLinear returns a Propagator enforcing sum(coeffs[i]*vars[i]) <rel> rhs.
// Panics if len(coeffs) != len(vars); both slices are defensively copied.
func NewLinear(coeffs []float64, vars []VarId, rel Relation, rhs float64) Propagator {
	if len(coeffs) != len(vars) {
		panic("fdsolve: NewLinear: len(coeffs) != len(vars)")
	}
	cs := make([]float64, len(coeffs))
	copy(cs, coeffs)
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	return &linearConstraint{coeffs: cs, vars: vs, rel: rel, rhs: rhs}
}

func (c *linearConstraint) Vars() []VarId               { return c.vars }
func (c *linearConstraint) Name() string                { return "linear" }
func (c *linearConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *linearConstraint) LinearRow() ([]float64, []VarId, Relation, float64) {
	return c.coeffs, c.vars, c.rel, c.rhs
}

// termBounds returns the (min, max) contribution of coeff*var, accounting
// for sign flip on negative coefficients.
func termBounds(ctx *Context, coeff float64, v VarId) (float64, float64) {
	lo, hi := boundsOf(ctx, v)
	a, b := coeff*lo.AsFloat(), coeff*hi.AsFloat()
	if a > b {
		a, b = b, a
	}
	return a, b
}

func (c *linearConstraint) Propagate(ctx *Context) error {
	sumLo, sumHi := 0.0, 0.0
	termLo := make([]float64, len(c.vars))
	termHi := make([]float64, len(c.vars))
	for i, v := range c.vars {
		lo, hi := termBounds(ctx, c.coeffs[i], v)
		termLo[i], termHi[i] = lo, hi
		sumLo += lo
		sumHi += hi
	}

	if c.rel == RelNE {
		return c.propagateNE(ctx, sumLo, sumHi, termLo, termHi)
	}

	// Translate the relation into an achievable [lo, hi] window for the sum.
	winLo, winHi := sumLo, sumHi
	switch c.rel {
	case RelLE:
		winHi = c.rhs
	case RelGE:
		winLo = c.rhs
	case RelEQ:
		winLo, winHi = c.rhs, c.rhs
	}
	if winHi < sumLo || winLo > sumHi {
		return errInconsistency
	}

	for i, v := range c.vars {
		if c.coeffs[i] == 0 {
			continue
		}
		// This term's own contribution must fit within
		// [winLo - sum(other maxes), winHi - sum(other mins)].
		otherMinSum := sumLo - termLo[i]
		otherMaxSum := sumHi - termHi[i]
		termWinLo := winLo - otherMaxSum
		termWinHi := winHi - otherMinSum

		// Convert the term window back to a bound on v itself, dividing by
		// coeff and flipping the window if coeff is negative.
		vLoBound, vHiBound := termWinLo/c.coeffs[i], termWinHi/c.coeffs[i]
		if c.coeffs[i] < 0 {
			vLoBound, vHiBound = vHiBound, vLoBound
		}
		if err := narrowLower(ctx, v, floatOrIntVal(ctx, v, vLoBound, true)); err != nil {
			return err
		}
		if err := narrowUpper(ctx, v, floatOrIntVal(ctx, v, vHiBound, false)); err != nil {
			return err
		}
	}
	return nil
}

// propagateNE enforces sum(coeffs[i]*vars[i]) != rhs, per spec §4.4's
// relation set ({=, <=, !=}). Disequality gives no interval to narrow in
// general (the forbidden quantity is a single point, not a window), so
// this only prunes in the classic all-but-one-term-fixed case: once every
// other term's contribution is pinned to an exact value, this term's
// forced value is known, and if that forced value would pin the whole sum
// to exactly rhs, it's removed from this term's variable. Sound but
// incomplete, the same documented scope as propagateModFixedPoint's
// fully-fixed-only handling of modulo's non-monotonic range.
func (c *linearConstraint) propagateNE(ctx *Context, sumLo, sumHi float64, termLo, termHi []float64) error {
	if sumLo == sumHi {
		if sumLo == c.rhs {
			return errInconsistency
		}
		return nil
	}
	for i, v := range c.vars {
		if c.coeffs[i] == 0 {
			continue
		}
		otherLo := sumLo - termLo[i]
		otherHi := sumHi - termHi[i]
		if otherLo != otherHi {
			continue // other terms aren't all pinned yet; no single forbidden value to derive
		}
		if ctx.vars.Kind(v) != KindInt {
			continue // a continuous float domain has no single-point exclusion
		}
		forbidden := (c.rhs - otherLo) / c.coeffs[i]
		rounded := int64(math.Round(forbidden))
		if float64(rounded) != forbidden {
			continue // the forbidden point isn't an integer, so it was never reachable anyway
		}
		if err := ctx.NarrowInt(v, ctx.vars.IntDomain(v).Remove(rounded)); err != nil {
			return err
		}
	}
	return nil
}

// floatOrIntVal converts a raw float64 bound back into a Val appropriate
// for v's kind: ceil for a lower int bound, floor for an upper int bound
// (the bound must never be relaxed past what the arithmetic justifies), or
// the float itself unchanged (NarrowFloat's own quantizer handles grid
// alignment).
func floatOrIntVal(ctx *Context, v VarId, x float64, isLower bool) Val {
	if ctx.vars.Kind(v) == KindFloat {
		return FloatVal(x)
	}
	if isLower {
		return IntVal(ceilInt(x))
	}
	return IntVal(floorInt(x))
}

func ceilInt(x float64) int64 {
	i := int64(x)
	if float64(i) < x {
		i++
	}
	return i
}

func floorInt(x float64) int64 {
	i := int64(x)
	if float64(i) > x {
		i--
	}
	return i
}
