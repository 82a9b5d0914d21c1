package fdsolve

// tableConstraint enforces that vars' joint assignment must match one of a
// fixed set of allowed tuples, per spec §5 ("table: extensional constraint
// given as an explicit tuple list"). Achieves generalized arc consistency
// by simple support-counting: a (variable, value) pair survives iff at
// least one tuple agrees with it and is otherwise consistent with every
// other variable's current domain. There is no teacher equivalent; this is
// the classical GAC-schema algorithm, written in the same
// domain-snapshot-then-filter shape as constraints_alldiff.go.
type tableConstraint struct {
	vars   []VarId
	tuples [][]int64
}

// NewTable returns a Propagator restricting vars to the rows of tuples.
// Each row's length must equal len(vars); neither this constructor nor
// Model.Table checks it.
func NewTable(vars []VarId, tuples [][]int64) Propagator {
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	ts := make([][]int64, len(tuples))
	for i, t := range tuples {
		row := make([]int64, len(t))
		copy(row, t)
		ts[i] = row
	}
	return &tableConstraint{vars: vs, tuples: ts}
}

func (c *tableConstraint) Vars() []VarId { return c.vars }
func (c *tableConstraint) Name() string  { return "table" }

func (c *tableConstraint) Propagate(ctx *Context) error {
	domains := make([]IntDomain, len(c.vars))
	for i, v := range c.vars {
		domains[i] = ctx.vars.IntDomain(v)
	}

	// A tuple is viable if every column's value is still in that column's
	// current domain.
	viable := make([][]int64, 0, len(c.tuples))
	for _, t := range c.tuples {
		ok := true
		for i, v := range t {
			if !domains[i].Contains(v) {
				ok = false
				break
			}
		}
		if ok {
			viable = append(viable, t)
		}
	}
	if len(viable) == 0 {
		return errInconsistency
	}

	for i, v := range c.vars {
		supported := make(map[int64]bool)
		for _, t := range viable {
			supported[t[i]] = true
		}
		nd := domains[i]
		domains[i].ForEach(func(val int64) {
			if !supported[val] {
				nd = nd.Remove(val)
			}
		})
		if err := ctx.NarrowInt(v, nd); err != nil {
			return err
		}
		domains[i] = nd
	}
	return nil
}
