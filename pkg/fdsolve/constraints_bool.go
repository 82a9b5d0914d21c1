package fdsolve

// Boolean variables are modeled as int variables with domain {0, 1}, per
// spec §3 ("Boolean is a specialization of finite-domain integer with
// domain {0,1}"); these propagators all work directly in terms of that
// encoding rather than introducing a separate Kind. No teacher equivalent
// (gokanlogic has no Boolean layer); grounded in the classical unit
// propagation rules for each gate, written in the same
// narrow-then-check-singleton idiom as constraints_count.go.

func boolFixed(ctx *Context, v VarId) (fixed bool, val int64) {
	d := ctx.vars.IntDomain(v)
	if d.IsSingleton() {
		return true, d.SingletonValue()
	}
	return false, 0
}

func fixBool(ctx *Context, v VarId, val int64) error {
	return ctx.NarrowInt(v, ctx.vars.IntDomain(v).Fix(val))
}

// andConstraint enforces result == AND(vars...).
type andConstraint struct {
	vars   []VarId
	result VarId
}

// NewAnd returns a Propagator enforcing result = AND(vars...).
func NewAnd(vars []VarId, result VarId) Propagator {
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	return &andConstraint{vars: vs, result: result}
}

func (c *andConstraint) Vars() []VarId               { return append([]VarId{c.result}, c.vars...) }
func (c *andConstraint) Name() string                { return "and" }
func (c *andConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *andConstraint) Propagate(ctx *Context) error {
	anyZero := false
	allOne := true
	var undecided []VarId
	for _, v := range c.vars {
		fixed, val := boolFixed(ctx, v)
		if fixed {
			if val == 0 {
				anyZero = true
				allOne = false
			}
		} else {
			allOne = false
			undecided = append(undecided, v)
		}
	}
	if anyZero {
		return fixBool(ctx, c.result, 0)
	}
	if allOne {
		return fixBool(ctx, c.result, 1)
	}
	if fixed, val := boolFixed(ctx, c.result); fixed {
		if val == 1 {
			for _, v := range undecided {
				if err := fixBool(ctx, v, 1); err != nil {
					return err
				}
			}
		} else if len(undecided) == 1 {
			return fixBool(ctx, undecided[0], 0)
		}
	}
	return nil
}

// orConstraint enforces result == OR(vars...).
type orConstraint struct {
	vars   []VarId
	result VarId
}

// NewOr returns a Propagator enforcing result = OR(vars...).
func NewOr(vars []VarId, result VarId) Propagator {
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	return &orConstraint{vars: vs, result: result}
}

func (c *orConstraint) Vars() []VarId               { return append([]VarId{c.result}, c.vars...) }
func (c *orConstraint) Name() string                { return "or" }
func (c *orConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *orConstraint) Propagate(ctx *Context) error {
	anyOne := false
	allZero := true
	var undecided []VarId
	for _, v := range c.vars {
		fixed, val := boolFixed(ctx, v)
		if fixed {
			if val == 1 {
				anyOne = true
				allZero = false
			}
		} else {
			allZero = false
			undecided = append(undecided, v)
		}
	}
	if anyOne {
		return fixBool(ctx, c.result, 1)
	}
	if allZero {
		return fixBool(ctx, c.result, 0)
	}
	if fixed, val := boolFixed(ctx, c.result); fixed {
		if val == 0 {
			for _, v := range undecided {
				if err := fixBool(ctx, v, 0); err != nil {
					return err
				}
			}
		} else if len(undecided) == 1 {
			return fixBool(ctx, undecided[0], 1)
		}
	}
	return nil
}

// notConstraint enforces result == 1 - x.
type notConstraint struct {
	x, result VarId
}

// NewNot returns a Propagator enforcing result = NOT x.
func NewNot(x, result VarId) Propagator { return &notConstraint{x: x, result: result} }

func (c *notConstraint) Vars() []VarId               { return []VarId{c.x, c.result} }
func (c *notConstraint) Name() string                { return "not" }
func (c *notConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *notConstraint) Propagate(ctx *Context) error {
	if fixed, val := boolFixed(ctx, c.x); fixed {
		return fixBool(ctx, c.result, 1-val)
	}
	if fixed, val := boolFixed(ctx, c.result); fixed {
		return fixBool(ctx, c.x, 1-val)
	}
	return nil
}

// xorConstraint enforces result == x XOR y.
type xorConstraint struct {
	x, y, result VarId
}

// NewXor returns a Propagator enforcing result = x XOR y.
func NewXor(x, y, result VarId) Propagator { return &xorConstraint{x: x, y: y, result: result} }

func (c *xorConstraint) Vars() []VarId               { return []VarId{c.x, c.y, c.result} }
func (c *xorConstraint) Name() string                { return "xor" }
func (c *xorConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *xorConstraint) Propagate(ctx *Context) error {
	xFixed, xVal := boolFixed(ctx, c.x)
	yFixed, yVal := boolFixed(ctx, c.y)
	if xFixed && yFixed {
		return fixBool(ctx, c.result, xVal^yVal)
	}
	if rFixed, rVal := boolFixed(ctx, c.result); rFixed {
		if xFixed {
			return fixBool(ctx, c.y, xVal^rVal)
		}
		if yFixed {
			return fixBool(ctx, c.x, yVal^rVal)
		}
	}
	return nil
}

// cnfConstraint enforces a conjunction of clauses, each clause a
// disjunction of literals (VarId, negated bool), the classic CNF/SAT
// encoding referenced in spec §5 ("cnf: conjunctive-normal-form clause
// set"). Unit propagation: a clause with exactly one undecided literal and
// every other literal falsified forces that literal true.
type Literal struct {
	Var    VarId
	Negated bool
}

type cnfConstraint struct {
	clauses [][]Literal
}

// NewCNF returns a Propagator enforcing every clause in clauses is
// satisfied (clauses is a conjunction of disjunctions of Literal).
func NewCNF(clauses [][]Literal) Propagator {
	cs := make([][]Literal, len(clauses))
	for i, cl := range clauses {
		row := make([]Literal, len(cl))
		copy(row, cl)
		cs[i] = row
	}
	return &cnfConstraint{clauses: cs}
}

func (c *cnfConstraint) Vars() []VarId {
	seen := make(map[VarId]bool)
	var out []VarId
	for _, cl := range c.clauses {
		for _, lit := range cl {
			if !seen[lit.Var] {
				seen[lit.Var] = true
				out = append(out, lit.Var)
			}
		}
	}
	return out
}
func (c *cnfConstraint) Name() string { return "cnf" }

func litValue(fixed bool, val int64, negated bool) (decided bool, satisfied bool) {
	if !fixed {
		return false, false
	}
	truth := val == 1
	if negated {
		truth = !truth
	}
	return true, truth
}

func (c *cnfConstraint) Propagate(ctx *Context) error {
	for _, clause := range c.clauses {
		satisfied := false
		var unitLit *Literal
		unitCount := 0
		for i := range clause {
			lit := clause[i]
			fixed, val := boolFixed(ctx, lit.Var)
			decided, sat := litValue(fixed, val, lit.Negated)
			if decided && sat {
				satisfied = true
				break
			}
			if !decided {
				unitCount++
				unitLit = &clause[i]
			}
		}
		if satisfied {
			continue
		}
		if unitCount == 0 {
			return errInconsistency
		}
		if unitCount == 1 {
			want := int64(1)
			if unitLit.Negated {
				want = 0
			}
			if err := fixBool(ctx, unitLit.Var, want); err != nil {
				return err
			}
		}
	}
	return nil
}
