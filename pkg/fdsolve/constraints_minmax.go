package fdsolve

// minMaxConstraint propagates target = min(vars...) or target = max(vars...),
// per spec §5. There is no direct teacher equivalent (gokanlogic has no
// min/max reifier); built in the same bounds-consistency style as
// constraints_arith.go's propagateMul, generalized to n-ary operands.
type minMaxConstraint struct {
	target VarId
	vars   []VarId
	isMax  bool
}

// NewMin returns a Propagator enforcing target = min(vars...).
func NewMin(target VarId, vars []VarId) Propagator {
	return &minMaxConstraint{target: target, vars: append([]VarId(nil), vars...)}
}

// NewMax returns a Propagator enforcing target = max(vars...).
func NewMax(target VarId, vars []VarId) Propagator {
	return &minMaxConstraint{target: target, vars: append([]VarId(nil), vars...), isMax: true}
}

func (c *minMaxConstraint) Vars() []VarId {
	return append([]VarId{c.target}, c.vars...)
}

func (c *minMaxConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *minMaxConstraint) Name() string {
	if c.isMax {
		return "max"
	}
	return "min"
}

func (c *minMaxConstraint) Propagate(ctx *Context) error {
	if c.isMax {
		return c.propagateMax(ctx)
	}
	return c.propagateMin(ctx)
}

func (c *minMaxConstraint) propagateMin(ctx *Context) error {
	// target <= min of every operand's max, and target >= min of every
	// operand's min.
	lo, hi := boundsOf(ctx, c.vars[0])
	for _, v := range c.vars[1:] {
		vLo, vHi := boundsOf(ctx, v)
		if vLo.Cmp(lo) < 0 {
			lo = vLo
		}
		if vHi.Cmp(hi) < 0 {
			hi = vHi
		}
	}
	if err := narrowLower(ctx, c.target, lo); err != nil {
		return err
	}
	if err := narrowUpper(ctx, c.target, hi); err != nil {
		return err
	}
	// Every operand's lower bound can't fall below target's.
	tLo, _ := boundsOf(ctx, c.target)
	for _, v := range c.vars {
		if err := narrowLower(ctx, v, tLo); err != nil {
			return err
		}
	}
	return nil
}

func (c *minMaxConstraint) propagateMax(ctx *Context) error {
	lo, hi := boundsOf(ctx, c.vars[0])
	for _, v := range c.vars[1:] {
		vLo, vHi := boundsOf(ctx, v)
		if vLo.Cmp(lo) > 0 {
			lo = vLo
		}
		if vHi.Cmp(hi) > 0 {
			hi = vHi
		}
	}
	if err := narrowLower(ctx, c.target, lo); err != nil {
		return err
	}
	if err := narrowUpper(ctx, c.target, hi); err != nil {
		return err
	}
	_, tHi := boundsOf(ctx, c.target)
	for _, v := range c.vars {
		if err := narrowUpper(ctx, v, tHi); err != nil {
			return err
		}
	}
	return nil
}
