package fdsolve

// betweenConstraint enforces lo <= x <= hi for constant bounds, per spec §5
// ("between: a variable bounded by two constants"). No teacher equivalent;
// a one-variable specialization of constraints_compare.go's narrowLower/
// narrowUpper, kept as its own propagator (rather than two NewCompare calls
// against constant pseudo-variables) since there's no variable to create
// for a constant bound.
type betweenConstraint struct {
	x      VarId
	lo, hi Val
}

// NewBetween returns a Propagator enforcing lo <= x <= hi.
func NewBetween(x VarId, lo, hi Val) Propagator {
	return &betweenConstraint{x: x, lo: lo, hi: hi}
}

func (c *betweenConstraint) Vars() []VarId               { return []VarId{c.x} }
func (c *betweenConstraint) Name() string                { return "between" }
func (c *betweenConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *betweenConstraint) Propagate(ctx *Context) error {
	if err := narrowLower(ctx, c.x, c.lo); err != nil {
		return err
	}
	return narrowUpper(ctx, c.x, c.hi)
}

// amongConstraint enforces that exactly a count in [lo, hi] of vars take a
// value from the given value set, per spec §5 ("among: generalizes count to
// a set of target values with a bounded count range"). No teacher
// equivalent; built directly on top of countConstraint's bounds logic,
// summed across the value set.
type amongConstraint struct {
	vars   []VarId
	values map[int64]bool
	lo, hi int
}

// NewAmong returns a Propagator enforcing lo <= |{v in vars : v in values}| <= hi.
func NewAmong(vars []VarId, values []int64, lo, hi int) Propagator {
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	vals := make(map[int64]bool, len(values))
	for _, v := range values {
		vals[v] = true
	}
	return &amongConstraint{vars: vs, values: vals, lo: lo, hi: hi}
}

func (c *amongConstraint) Vars() []VarId { return c.vars }
func (c *amongConstraint) Name() string  { return "among" }

func (c *amongConstraint) Propagate(ctx *Context) error {
	forced, possible := 0, 0
	var undecided []VarId
	for _, v := range c.vars {
		d := ctx.vars.IntDomain(v)
		inSet := false
		d.ForEach(func(val int64) {
			if c.values[val] {
				inSet = true
			}
		})
		if !inSet {
			continue
		}
		possible++
		if d.IsSingleton() {
			forced++
		} else {
			undecided = append(undecided, v)
		}
	}
	if forced > c.hi || possible < c.lo {
		return errInconsistency
	}
	if forced == c.hi {
		for _, v := range undecided {
			nd := ctx.vars.IntDomain(v)
			for val := range c.values {
				nd = nd.Remove(val)
			}
			if err := ctx.NarrowInt(v, nd); err != nil {
				return err
			}
		}
	}
	if possible == c.lo {
		for _, v := range undecided {
			d := ctx.vars.IntDomain(v)
			var keep []int64
			d.ForEach(func(val int64) {
				if c.values[val] {
					keep = append(keep, val)
				}
			})
			if len(keep) == 1 {
				if err := ctx.NarrowInt(v, ctx.vars.IntDomain(v).Fix(keep[0])); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
