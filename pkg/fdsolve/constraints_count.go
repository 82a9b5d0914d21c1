package fdsolve

// countConstraint enforces that exactly countVar of vars equal value, per
// spec §5 ("count: exactly N variables equal a given value"). No teacher
// equivalent; a direct bounds argument: the number of vars that *could*
// still equal value upper-bounds countVar's max, and the number already
// *fixed* to value lower-bounds its min; once countVar is fixed, vars
// whose domain would push the count over/under are pruned.
type countConstraint struct {
	vars     []VarId
	value    int64
	countVar VarId
}

// NewCount returns a Propagator enforcing countVar == |{v in vars : v == value}|.
func NewCount(vars []VarId, value int64, countVar VarId) Propagator {
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	return &countConstraint{vars: vs, value: value, countVar: countVar}
}

func (c *countConstraint) Vars() []VarId { return append([]VarId{c.countVar}, c.vars...) }
func (c *countConstraint) Name() string  { return "count" }

func (c *countConstraint) Propagate(ctx *Context) error {
	possible, forced := 0, 0
	var undecided []VarId
	for _, v := range c.vars {
		d := ctx.vars.IntDomain(v)
		if !d.Contains(c.value) {
			continue
		}
		possible++
		if d.IsSingleton() {
			forced++
		} else {
			undecided = append(undecided, v)
		}
	}

	if err := ctx.NarrowInt(c.countVar, ctx.vars.IntDomain(c.countVar).RemoveBelow(int64(forced))); err != nil {
		return err
	}
	if err := ctx.NarrowInt(c.countVar, ctx.vars.IntDomain(c.countVar).RemoveAbove(int64(possible))); err != nil {
		return err
	}

	cnt := ctx.vars.IntDomain(c.countVar)
	if !cnt.IsSingleton() {
		return nil
	}
	target := int(cnt.SingletonValue())

	if target == forced {
		// No more of the undecided vars may take value.
		for _, v := range undecided {
			if err := ctx.NarrowInt(v, ctx.vars.IntDomain(v).Remove(c.value)); err != nil {
				return err
			}
		}
	} else if target == possible {
		// Every undecided var still eligible must take value.
		for _, v := range undecided {
			if err := ctx.NarrowInt(v, ctx.vars.IntDomain(v).Fix(c.value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// gccConstraint (global cardinality constraint) generalizes countConstraint
// to many values at once: each value in the keys of counts must appear
// exactly the paired number of times across vars. Implemented by delegating
// to one countConstraint-shaped bounds check per value, matching the
// spec's "count/GCC" pairing in §5 and the module map's single
// constraints_count.go file for both.
type gccConstraint struct {
	vars   []VarId
	counts map[int64]VarId
}

// NewGCC returns a Propagator enforcing, for every (value, countVar) pair
// in counts, countVar == |{v in vars : v == value}|.
func NewGCC(vars []VarId, counts map[int64]VarId) Propagator {
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	cs := make(map[int64]VarId, len(counts))
	for k, v := range counts {
		cs[k] = v
	}
	return &gccConstraint{vars: vs, counts: cs}
}

func (c *gccConstraint) Vars() []VarId {
	out := append([]VarId(nil), c.vars...)
	for _, cv := range c.counts {
		out = append(out, cv)
	}
	return out
}
func (c *gccConstraint) Name() string { return "gcc" }

func (c *gccConstraint) Propagate(ctx *Context) error {
	for value, countVar := range c.counts {
		sub := countConstraint{vars: c.vars, value: value, countVar: countVar}
		if err := sub.Propagate(ctx); err != nil {
			return err
		}
	}
	return nil
}
