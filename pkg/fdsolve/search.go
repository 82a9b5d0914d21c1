package fdsolve

// Solution is a snapshot of every variable's fixed value at a leaf of the
// search tree, per spec §7.
type Solution struct {
	Values []Val
}

// Get returns the value assigned to id in this solution.
func (s Solution) Get(id VarId) Val { return s.Values[id] }

// searchFrame is one level of the iterative DFS stack: a checkpoint to
// restore to on backtrack, the variable being branched on, and its
// remaining candidate values. Directly grounded on the teacher's DFSSearch
// frame struct (pkg/minikanren/search.go: snap/varID/valIdx/choices),
// generalized from int-only choices to Val (so float bisection and int
// enumeration share one frame shape) and from a raw trail-length snapshot
// to this engine's checkpoint (which also covers the event queue).
type searchFrame struct {
	cp      checkpoint
	v       VarId
	choices []branchChoice
	next    int
}

// branchChoice is one candidate narrowing to try for the frame's variable:
// either fix an int to an exact value, or narrow a float to one bisection
// half. A tagged union rather than a bare Val since float branching
// narrows to an interval, not a point.
type branchChoice struct {
	isFloat    bool
	intVal     Val
	floatRange FloatDomain
}

// Engine runs depth-first search with chronological backtracking over a
// Context, per spec §7. Mirrors the teacher's DFSSearch.Search
// (pkg/minikanren/search.go) iterative frame-stack shape, adapted from the
// teacher's copy-on-write store.snapshot()/store.undo() pair to this
// engine's Context.Checkpoint/Context.Restore, and generalized to branch on
// both int (full enumeration) and float (bisection) variables.
type Engine struct {
	ctx      *Context
	graph    *constraintGraph
	heur     VariableHeuristic
	onSolution func(Solution) (keepGoing bool)
}

// NewEngine constructs a search Engine over ctx using heur to pick branch
// variables. graph is built once from every propagator registered on ctx
// at the time of the call (model.go calls this after every constraint has
// been posted).
func NewEngine(ctx *Context, propagators []Propagator, heur VariableHeuristic) *Engine {
	return &Engine{
		ctx:   ctx,
		graph: buildConstraintGraph(ctx.vars.Len(), propagators),
		heur:  heur,
	}
}

// Run performs DFS, invoking onSolution at every leaf (a fully-fixed
// assignment consistent with every propagator). onSolution returning false
// stops the search early (used by Solve, which stops at the first solution,
// and by Enumerate's result limit; Minimize/Maximize in optimize.go always
// keep going). Returns
// ErrInternalError if the per-node propagation cap is ever exceeded, or a
// SolverError wrapping context cancellation/timeout.
func (e *Engine) Run(onSolution func(Solution) (keepGoing bool)) error {
	e.onSolution = onSolution

	if err := e.ctx.Propagate(); err != nil {
		if err == errInconsistency {
			return nil // no solutions, not an error
		}
		return err
	}
	if e.allFixed() {
		e.onSolution(e.snapshotSolution())
		return nil
	}

	var stack []searchFrame
	frame, ok := e.pushFrame()
	if !ok {
		return nil
	}
	stack = append(stack, frame)

	for len(stack) > 0 {
		if e.ctx.Deadlined() {
			return &SolverError{Kind: KindTimeout, ElapsedMS: e.ctx.cfg.TimeoutMS}
		}

		f := &stack[len(stack)-1]
		e.ctx.stats.Nodes++

		if f.next >= len(f.choices) {
			e.ctx.stats.Backtracks++
			e.ctx.Restore(f.cp)
			stack = stack[:len(stack)-1]
			continue
		}

		choice := f.choices[f.next]
		f.next++

		if err := e.assign(f.v, choice); err != nil {
			if err == errInconsistency {
				e.ctx.Restore(f.cp)
				continue
			}
			return err
		}

		if err := e.ctx.Propagate(); err != nil {
			if err == errInconsistency {
				e.ctx.Restore(f.cp)
				continue
			}
			return err
		}

		if e.allFixed() {
			keepGoing := e.onSolution(e.snapshotSolution())
			e.ctx.Restore(f.cp)
			if !keepGoing {
				return nil
			}
			continue
		}

		next, ok := e.pushFrame()
		if !ok {
			e.ctx.Restore(f.cp)
			continue
		}
		stack = append(stack, next)
	}
	return nil
}

func (e *Engine) allFixed() bool {
	n := e.ctx.vars.Len()
	for i := 0; i < n; i++ {
		if !e.ctx.vars.IsFixed(VarId(i)) {
			return false
		}
	}
	return true
}

func (e *Engine) snapshotSolution() Solution {
	n := e.ctx.vars.Len()
	vals := make([]Val, n)
	for i := 0; i < n; i++ {
		vals[i] = e.ctx.vars.Value(VarId(i))
	}
	e.ctx.stats.Solutions++
	return Solution{Values: vals}
}

// pushFrame selects the next branch variable and builds its frame. Returns
// ok=false if every variable is already fixed (handled by the caller as a
// solution) or the heuristic found nothing to branch on.
func (e *Engine) pushFrame() (searchFrame, bool) {
	v := e.heur.Select(e.ctx, e.graph)
	if v == -1 {
		return searchFrame{}, false
	}
	var choices []branchChoice
	if e.ctx.vars.Kind(v) == KindInt {
		for _, iv := range orderedIntChoices(e.ctx.vars.IntDomain(v)) {
			choices = append(choices, branchChoice{intVal: IntVal(iv)})
		}
	} else {
		lowHalf, highHalf := floatBisectMidpoint(e.ctx.vars.FloatDomainOf(v))
		choices = []branchChoice{
			{isFloat: true, floatRange: lowHalf},
			{isFloat: true, floatRange: highHalf},
		}
	}
	return searchFrame{cp: e.ctx.Checkpoint(), v: v, choices: choices}, true
}

// assign applies the branching decision's domain effect: fix v to an exact
// int value, or narrow v to one bisection half for a float.
func (e *Engine) assign(v VarId, choice branchChoice) error {
	if choice.isFloat {
		return e.ctx.NarrowFloat(v, choice.floatRange)
	}
	return e.ctx.NarrowInt(v, e.ctx.vars.IntDomain(v).Fix(choice.intVal.AsInt()))
}
