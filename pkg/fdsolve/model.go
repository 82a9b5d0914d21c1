package fdsolve

import "math"

// Model is the public construction and solve surface of the package,
// per spec §6 ("Model construction API"). Grounded on the teacher's
// top-level FDStore/SolverConfig pairing (pkg/minikanren/fd.go: NewStore,
// then NewVariable/AddConstraint/Solve methods hung directly off the
// store) — this Model plays the same role of "the one object users touch",
// generalized to cover both int and float variables and the fluent
// constraint-posting surface the teacher's single-kind store didn't need.
type Model struct {
	cfg         Config
	ctx         *Context
	propagators []Propagator
	heuristic   VariableHeuristic
	unbounded   int64 // derived working bound magnitude for declared-unbounded vars
}

// NewModel constructs a Model with DefaultConfig, adjusted by opts.
func NewModel(opts ...Option) *Model {
	cfg := *DefaultConfig().apply(opts)
	m := &Model{
		cfg:       cfg,
		ctx:       newContext(cfg),
		heuristic: NewMostConstrainedFirst(),
		unbounded: int64(cfg.UnboundedInferenceFactor) * 1_000_000,
	}
	return m
}

// DefaultModel constructs a Model with every default setting.
func DefaultModel() *Model { return NewModel() }

// SetHeuristic overrides the default most-constrained-first branching
// heuristic. Must be called before Solve/Enumerate/Minimize/Maximize.
func (m *Model) SetHeuristic(h VariableHeuristic) { m.heuristic = h }

// Stats exposes the running solve statistics.
func (m *Model) Stats() *Stats { return m.ctx.stats }

// Int declares an integer variable ranging over [lo, hi]. Extreme bounds
// (wider than the configured unbounded-inference factor would justify) are
// clamped to a derived working range rather than left as math.MinInt64/
// MaxInt64, per spec §3 ("unbounded_inference_factor scales inferred
// working bounds for variables declared with extreme bounds").
func (m *Model) Int(lo, hi int64) VarId {
	unbounded := false
	if lo < -m.unbounded {
		lo = -m.unbounded
		unbounded = true
	}
	if hi > m.unbounded {
		hi = m.unbounded
		unbounded = true
	}
	return m.ctx.vars.addInt(NewIntRange(lo, hi), unbounded)
}

// Ints declares n independent integer variables, each ranging over [lo, hi].
func (m *Model) Ints(n int, lo, hi int64) []VarId {
	ids := make([]VarId, n)
	for i := range ids {
		ids[i] = m.Int(lo, hi)
	}
	return ids
}

// Ints2D declares an n x k grid of independent integer variables.
func (m *Model) Ints2D(n, k int, lo, hi int64) [][]VarId {
	grid := make([][]VarId, n)
	for i := range grid {
		grid[i] = m.Ints(k, lo, hi)
	}
	return grid
}

// Ints3D declares an n x k x d cuboid of independent integer variables.
func (m *Model) Ints3D(n, k, d int, lo, hi int64) [][][]VarId {
	cube := make([][][]VarId, n)
	for i := range cube {
		cube[i] = m.Ints2D(k, d, lo, hi)
	}
	return cube
}

// Float declares a float variable ranging over [lo, hi].
func (m *Model) Float(lo, hi float64) VarId {
	unbounded := math.IsInf(lo, -1) || math.IsInf(hi, 1)
	if math.IsInf(lo, -1) {
		lo = -float64(m.unbounded)
	}
	if math.IsInf(hi, 1) {
		hi = float64(m.unbounded)
	}
	return m.ctx.vars.addFloat(NewFloatInterval(lo, hi, m.cfg.FloatPrecisionDigits), unbounded)
}

// Floats declares n independent float variables, each ranging over [lo, hi].
func (m *Model) Floats(n int, lo, hi float64) []VarId {
	ids := make([]VarId, n)
	for i := range ids {
		ids[i] = m.Float(lo, hi)
	}
	return ids
}

// Bool declares a boolean variable, equivalent to Int(0, 1).
func (m *Model) Bool() VarId { return m.Int(0, 1) }

// Bools declares n independent boolean variables.
func (m *Model) Bools(n int) []VarId {
	ids := make([]VarId, n)
	for i := range ids {
		ids[i] = m.Bool()
	}
	return ids
}

// Post registers a constraint built by one of the NewXxx constructors
// (constraints_*.go) against the model. All of the constraint-posting
// convenience methods below are thin wrappers over Post, matching the
// spec's "one method per constraint listed in §4.4" requirement while
// keeping every propagator constructor independently usable for callers
// who want to build a Propagator without a Model.
func (m *Model) Post(p Propagator) {
	m.propagators = append(m.propagators, p)
	m.ctx.Register(p)
}

// Compare posts x <op> y.
func (m *Model) Compare(x, y VarId, op CompareOp) { m.Post(NewCompare(x, y, op)) }

// Eq, Neq, Lt, Leq, Gt, Geq are Compare's fixed-operator convenience forms.
func (m *Model) Eq(x, y VarId)  { m.Compare(x, y, OpEq) }
func (m *Model) Neq(x, y VarId) { m.Compare(x, y, OpNeq) }
func (m *Model) Lt(x, y VarId)  { m.Compare(x, y, OpLt) }
func (m *Model) Leq(x, y VarId) { m.Compare(x, y, OpLeq) }
func (m *Model) Gt(x, y VarId)  { m.Compare(x, y, OpGt) }
func (m *Model) Geq(x, y VarId) { m.Compare(x, y, OpGeq) }

// Arith posts z == x <op> y.
func (m *Model) Arith(x, y, z VarId, op ArithOp) { m.Post(NewArith(x, y, z, op)) }

func (m *Model) Plus(x, y, z VarId)  { m.Arith(x, y, z, ArithAdd) }
func (m *Model) Minus(x, y, z VarId) { m.Arith(x, y, z, ArithSub) }
func (m *Model) Times(x, y, z VarId) { m.Arith(x, y, z, ArithMul) }
func (m *Model) Quot(x, y, z VarId)  { m.Arith(x, y, z, ArithDiv) }
func (m *Model) Modulo(x, y, z VarId) { m.Arith(x, y, z, ArithMod) }

// Min posts target == min(vars), Max posts target == max(vars).
func (m *Model) Min(target VarId, vars []VarId) { m.Post(NewMin(target, vars)) }
func (m *Model) Max(target VarId, vars []VarId) { m.Post(NewMax(target, vars)) }

// Sum posts target == sum(vars). Incremental selects the teacher-style
// cached re-sum fast path (constraints_sum.go) over the plain recomputation
// used by Sum, the same tradeoff the spec leaves to the caller.
func (m *Model) Sum(target VarId, vars []VarId) { m.Post(NewSum(target, vars)) }
func (m *Model) IncrementalSum(target VarId, vars []VarId) {
	m.Post(NewIncrementalSum(target, vars))
}

// Linear posts sum(coeffs[i]*vars[i]) <rel> rhs.
func (m *Model) Linear(coeffs []float64, vars []VarId, rel Relation, rhs float64) {
	m.Post(NewLinear(coeffs, vars, rel, rhs))
}

// AllDifferent posts Régin's GAC all-different over vars.
func (m *Model) AllDifferent(vars []VarId) { m.Post(NewAllDifferent(vars)) }

// Element posts array[index] == target.
func (m *Model) Element(array []int64, index, target VarId) {
	m.Post(NewElement(array, index, target))
}

// Element2D posts array[i][j] == target over a row-major rows x cols table
// (flattenRowMajor2D, constraints_element.go), by introducing an auxiliary
// flat-index variable linked to i, j via flatIdx == i*cols+j (Linear) and
// handing that off to the 1-D Element propagator. Grounded on the same
// row-major offset convention as the katalvlaran-lvlath matrix package's
// Dense.At/Set.
func (m *Model) Element2D(array [][]int64, i, j, target VarId) {
	flat, cols := flattenRowMajor2D(array)
	flatIdx := m.Int(0, int64(len(flat)-1))
	m.Linear([]float64{1, -float64(cols), -1}, []VarId{flatIdx, i, j}, RelEQ, 0)
	m.Element(flat, flatIdx, target)
}

// Element3D posts array[i][j][k] == target over a row-major
// rows x cols x depth cuboid (flattenRowMajor3D), by introducing an
// auxiliary flat-index variable linked to i, j, k via
// flatIdx == (i*cols+j)*depth+k, decomposed into two Linear constraints
// through an intermediate ij variable since Linear only sums weighted
// terms and can't express the i*cols+j product folded into a further *depth
// in one row.
func (m *Model) Element3D(array [][][]int64, i, j, k, target VarId) {
	flat, cols, depth := flattenRowMajor3D(array)
	ij := m.Int(0, int64(len(array)*cols-1))
	m.Linear([]float64{1, -float64(cols), -1}, []VarId{ij, i, j}, RelEQ, 0)
	flatIdx := m.Int(0, int64(len(flat)-1))
	m.Linear([]float64{1, -float64(depth), -1}, []VarId{flatIdx, ij, k}, RelEQ, 0)
	m.Element(flat, flatIdx, target)
}

// Table posts a GAC-supported extensional constraint over vars.
func (m *Model) Table(vars []VarId, tuples [][]int64) { m.Post(NewTable(vars, tuples)) }

// Count posts countVar == |{ i : vars[i] == value }|.
func (m *Model) Count(vars []VarId, value int64, countVar VarId) {
	m.Post(NewCount(vars, value, countVar))
}

// GCC posts the global cardinality constraint: for each value, v,
// counts[v] == |{ i : vars[i] == value }|.
func (m *Model) GCC(vars []VarId, counts map[int64]VarId) { m.Post(NewGCC(vars, counts)) }

// Among posts lo <= |{ i : vars[i] in values }| <= hi.
func (m *Model) Among(vars []VarId, values []int64, lo, hi int) {
	m.Post(NewAmong(vars, values, lo, hi))
}

// Between posts lo <= x <= hi directly on the domain.
func (m *Model) Between(x VarId, lo, hi Val) { m.Post(NewBetween(x, lo, hi)) }

// And, Or, Not, Xor post the corresponding boolean-logic constraint over
// {0,1}-domain variables.
func (m *Model) And(vars []VarId, result VarId)  { m.Post(NewAnd(vars, result)) }
func (m *Model) Or(vars []VarId, result VarId)   { m.Post(NewOr(vars, result)) }
func (m *Model) Not(x, result VarId)             { m.Post(NewNot(x, result)) }
func (m *Model) Xor(x, y, result VarId)          { m.Post(NewXor(x, y, result)) }

// CNF posts a conjunction of clauses, each a disjunction of Literals.
func (m *Model) CNF(clauses [][]Literal) { m.Post(NewCNF(clauses)) }

// Reified posts b <=> (x <op> y).
func (m *Model) Reified(x, y VarId, op CompareOp, b VarId) {
	m.Post(NewReified(x, y, op, b))
}

// ReifiedLinear posts b <=> (sum(coeffs[i]*vars[i]) <rel> rhs).
func (m *Model) ReifiedLinear(coeffs []float64, vars []VarId, rel Relation, rhs float64, b VarId) {
	m.Post(NewReifiedLinear(coeffs, vars, rel, rhs, b))
}

// Int2Float posts f == float(i). Float2Int posts i == round(f, mode).
func (m *Model) Int2Float(i, f VarId)              { m.Post(NewInt2Float(i, f)) }
func (m *Model) Float2Int(f, i VarId, mode RoundMode) { m.Post(NewFloat2Int(f, i, mode)) }

// Solve finds one satisfying assignment, per spec §6's solve() entry
// point. Returns ErrNoSolution if the model is unsatisfiable.
func (m *Model) Solve() (*Solution, error) {
	var found *Solution
	err := m.run(func(sol Solution) bool {
		sol2 := sol
		found = &sol2
		return false
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNoSolution
	}
	return found, nil
}

// Enumerate visits every satisfying assignment via onSolution, stopping
// early if onSolution returns false or once limit solutions have been
// produced (limit 0 means unbounded), per spec §6 and SPEC_FULL.md's
// supplemented result-limit feature grounded on the teacher's
// SolveWithStrategy(ctx, strategy, limit).
func (m *Model) Enumerate(limit int, onSolution func(Solution) bool) error {
	count := 0
	return m.run(func(sol Solution) bool {
		count++
		keepGoing := onSolution(sol)
		if limit > 0 && count >= limit {
			return false
		}
		return keepGoing
	})
}

// Minimize runs branch-and-bound search minimizing obj's value.
func (m *Model) Minimize(obj VarId) (*Solution, error) {
	defer m.ctx.stats.finish()
	if err := m.prepare(); err != nil {
		if err == errInconsistency {
			return nil, ErrNoSolution
		}
		return nil, err
	}
	return NewEngine(m.ctx, m.propagators, m.heuristic).Minimize(obj)
}

// Maximize runs branch-and-bound search maximizing obj's value.
func (m *Model) Maximize(obj VarId) (*Solution, error) {
	defer m.ctx.stats.finish()
	if err := m.prepare(); err != nil {
		if err == errInconsistency {
			return nil, ErrNoSolution
		}
		return nil, err
	}
	return NewEngine(m.ctx, m.propagators, m.heuristic).Maximize(obj)
}

// run wires prepare+Engine.Run together for Solve/Enumerate, translating a
// root-level inconsistency into a clean "no solutions visited" rather than
// an error (matching Engine.Run's own root-inconsistency handling).
func (m *Model) run(onSolution func(Solution) bool) error {
	defer m.ctx.stats.finish()
	if err := m.prepare(); err != nil {
		if err == errInconsistency {
			return nil
		}
		return err
	}
	return NewEngine(m.ctx, m.propagators, m.heuristic).Run(onSolution)
}

// prepare runs the one-shot root LP relaxation (spec §4.6) before the
// first propagation/search step. Safe to call multiple times: the bridge
// itself is idempotent since it only tightens bounds, never widens them.
func (m *Model) prepare() error {
	return runLPRelaxation(m.ctx, m.propagators)
}
