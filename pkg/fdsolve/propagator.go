package fdsolve

// Propagator is the interface every constraint in the library implements,
// per spec §4 ("Constraints register as propagators; each watches one or
// more variables and is re-invoked whenever a watched variable changes").
// Grounded on the teacher's PropagationConstraint (pkg/minikanren/propagation.go),
// generalized from the teacher's copy-on-write "return a new *SolverState"
// calling convention to an in-place "mutate through ctx, trail records the
// undo" convention, matching this engine's Context (context.go).
type Propagator interface {
	// Vars returns every variable this propagator watches. The scheduler
	// (scheduler.go) re-invokes Propagate whenever any of them changes.
	Vars() []VarId

	// Propagate runs one round of filtering against ctx's current domains.
	// Returns errInconsistency (via Context.NarrowInt/NarrowFloat) if the
	// constraint can no longer be satisfied. Must be idempotent: calling it
	// again with no intervening domain change does nothing.
	Propagate(ctx *Context) error

	// Name identifies the propagator for diagnostics and the solver's
	// constraint inventory.
	Name() string
}

// LinearView is an optional capability a Propagator advertises when its
// constraint can be expressed as a linear inequality/equality over the
// model's variables, per spec §6 ("LP bridge extracts every propagator
// implementing a linear view"). Grounded on nothing in the teacher (which
// has no LP layer); styled after the gonum parametric-LP example's row
// convention (other_examples' gonum convex/lp example): coeffs align
// positionally with vars, and relation follows the usual ≤/=/≥ trio.
type LinearView interface {
	// LinearRow returns the coefficients, the variables they apply to, the
	// relation, and the right-hand side, of coeffs·vars {≤,=,≥} rhs.
	LinearRow() (coeffs []float64, vars []VarId, relation Relation, rhs float64)
}

// Relation is the comparison operator of a linear constraint row.
type Relation int

const (
	RelLE Relation = iota
	RelEQ
	RelGE
	// RelNE is only meaningful to linearConstraint (constraints_linear.go);
	// the LP bridge (lp_bridge.go) never sees it, since a disequality has
	// no linear-programming representation.
	RelNE
)

// PropagatorPriority is the two-tier cost class the scheduler
// (scheduler.go) uses to order its worklist, per spec §4.3 ("a
// deduplicated priority queue... bound-only propagators dequeue before
// global/complex propagators").
type PropagatorPriority int

const (
	// PriorityGlobal is the default for any propagator that doesn't
	// advertise Prioritized: a combinatorial/global constraint
	// (all-different, table, element, count/GCC, among) whose Propagate
	// is conservatively assumed expensive relative to simple interval
	// narrowing.
	PriorityGlobal PropagatorPriority = iota
	// PriorityBound marks a cheap bound/interval-consistency propagator
	// (arithmetic, comparison, linear, sum, min/max, reification,
	// boolean connectives, int/float conversion) that the scheduler
	// always drains ahead of any pending PriorityGlobal entry.
	PriorityBound
)

// Prioritized is an optional capability a Propagator advertises to move
// ahead of the default global-priority tier in the scheduler's worklist.
// A Propagator that doesn't implement it is scheduled as PriorityGlobal.
type Prioritized interface {
	Priority() PropagatorPriority
}

// priorityOf reads p's advertised Prioritized capability, defaulting to
// PriorityGlobal when absent.
func priorityOf(p Propagator) PropagatorPriority {
	if pr, ok := p.(Prioritized); ok {
		return pr.Priority()
	}
	return PriorityGlobal
}
