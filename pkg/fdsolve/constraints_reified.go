package fdsolve

// reifiedConstraint wraps a comparison in a reification boolean, per spec
// §5 ("reified: b <=> (x <op> y) for comparison ops"). Comparisons (here)
// and linear rows (reifiedLinearConstraint, below) are the reifiable
// forms; no other constraint has a reified variant.
type reifiedConstraint struct {
	x, y VarId
	op   CompareOp
	b    VarId
}

// NewReified returns a Propagator enforcing b == 1 iff x <op> y holds.
func NewReified(x, y VarId, op CompareOp, b VarId) Propagator {
	return &reifiedConstraint{x: x, y: y, op: op, b: b}
}

func (c *reifiedConstraint) Vars() []VarId               { return []VarId{c.x, c.y, c.b} }
func (c *reifiedConstraint) Name() string                { return "reified" }
func (c *reifiedConstraint) Priority() PropagatorPriority { return PriorityBound }

// entailment classifies whether x<op>y is definitely true, definitely
// false, or still undetermined given x and y's current bounds.
func entailment(ctx *Context, x, y VarId, op CompareOp) (definitelyTrue, definitelyFalse bool) {
	xLo, xHi := boundsOf(ctx, x)
	yLo, yHi := boundsOf(ctx, y)
	switch op {
	case OpLt:
		return xHi.Cmp(yLo) < 0, xLo.Cmp(yHi) >= 0
	case OpLeq:
		return xHi.Cmp(yLo) <= 0, xLo.Cmp(yHi) > 0
	case OpGt:
		return xLo.Cmp(yHi) > 0, xHi.Cmp(yLo) <= 0
	case OpGeq:
		return xLo.Cmp(yHi) >= 0, xHi.Cmp(yLo) < 0
	case OpEq:
		bothFixed := ctx.vars.IsFixed(x) && ctx.vars.IsFixed(y)
		if bothFixed {
			eq := ctx.vars.Value(x).Cmp(ctx.vars.Value(y)) == 0
			return eq, !eq
		}
		disjoint := xHi.Cmp(yLo) < 0 || yHi.Cmp(xLo) < 0
		return false, disjoint
	case OpNeq:
		bothFixed := ctx.vars.IsFixed(x) && ctx.vars.IsFixed(y)
		if bothFixed {
			eq := ctx.vars.Value(x).Cmp(ctx.vars.Value(y)) == 0
			return !eq, eq
		}
		disjoint := xHi.Cmp(yLo) < 0 || yHi.Cmp(xLo) < 0
		return disjoint, false
	}
	return false, false
}

func (c *reifiedConstraint) Propagate(ctx *Context) error {
	if fixed, val := boolFixed(ctx, c.b); fixed {
		// The boolean is decided: post the (negation of the) comparison
		// directly and let it propagate this round.
		op := c.op
		if val == 0 {
			op = negateCompare(c.op)
		}
		return (&compareConstraint{x: c.x, y: c.y, op: op}).Propagate(ctx)
	}

	trueVal, falseVal := entailment(ctx, c.x, c.y, c.op)
	if trueVal {
		return fixBool(ctx, c.b, 1)
	}
	if falseVal {
		return fixBool(ctx, c.b, 0)
	}
	return nil
}

// reifiedLinearConstraint ties a linearConstraint's truth value to a
// boolean variable, the same b <=> constraint shape as reifiedConstraint
// above, extended to the weighted-sum family (constraints_linear.go)
// rather than just binary comparisons.
type reifiedLinearConstraint struct {
	lc *linearConstraint
	b  VarId
}

// NewReifiedLinear returns a Propagator enforcing b == 1 iff
// sum(coeffs[i]*vars[i]) <rel> rhs holds.
func NewReifiedLinear(coeffs []float64, vars []VarId, rel Relation, rhs float64, b VarId) Propagator {
	lc := NewLinear(coeffs, vars, rel, rhs).(*linearConstraint)
	return &reifiedLinearConstraint{lc: lc, b: b}
}

func (c *reifiedLinearConstraint) Vars() []VarId {
	return append([]VarId{c.b}, c.lc.vars...)
}
func (c *reifiedLinearConstraint) Name() string                { return "reified_linear" }
func (c *reifiedLinearConstraint) Priority() PropagatorPriority { return PriorityBound }

// linearEntailment classifies whether the weighted sum is definitely
// within c.rel's window or definitely outside it, given every term's
// current bounds, mirroring entailment's role for compareConstraint.
func linearEntailment(ctx *Context, c *linearConstraint) (definitelyTrue, definitelyFalse bool) {
	sumLo, sumHi := 0.0, 0.0
	for i, v := range c.vars {
		lo, hi := termBounds(ctx, c.coeffs[i], v)
		sumLo += lo
		sumHi += hi
	}
	switch c.rel {
	case RelLE:
		return sumHi <= c.rhs, sumLo > c.rhs
	case RelGE:
		return sumLo >= c.rhs, sumHi < c.rhs
	case RelEQ:
		return sumLo == sumHi && sumLo == c.rhs, sumHi < c.rhs || sumLo > c.rhs
	case RelNE:
		return sumHi < c.rhs || sumLo > c.rhs, sumLo == sumHi && sumLo == c.rhs
	}
	return false, false
}

// negateLinearRelation returns the relation enforcing the opposite of rel,
// when one exists in this engine's Relation vocabulary. RelEQ and RelNE
// are exact complements; RelLE/RelGE have no complement here (their
// negation is a strict inequality this engine has no Relation for), so
// the b==0 direction for those two relies on linearEntailment alone rather
// than an active negated repost.
func negateLinearRelation(rel Relation) (Relation, bool) {
	switch rel {
	case RelEQ:
		return RelNE, true
	case RelNE:
		return RelEQ, true
	}
	return rel, false
}

func (c *reifiedLinearConstraint) Propagate(ctx *Context) error {
	if fixed, val := boolFixed(ctx, c.b); fixed {
		rel := c.lc.rel
		if val == 0 {
			negated, ok := negateLinearRelation(rel)
			if !ok {
				return nil
			}
			rel = negated
		}
		return (&linearConstraint{coeffs: c.lc.coeffs, vars: c.lc.vars, rel: rel, rhs: c.lc.rhs}).Propagate(ctx)
	}

	trueVal, falseVal := linearEntailment(ctx, c.lc)
	if trueVal {
		return fixBool(ctx, c.b, 1)
	}
	if falseVal {
		return fixBool(ctx, c.b, 0)
	}
	return nil
}

func negateCompare(op CompareOp) CompareOp {
	switch op {
	case OpEq:
		return OpNeq
	case OpNeq:
		return OpEq
	case OpLt:
		return OpGeq
	case OpLeq:
		return OpGt
	case OpGt:
		return OpLeq
	case OpGeq:
		return OpLt
	}
	return op
}
