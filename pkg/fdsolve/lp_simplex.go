package fdsolve

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// lp_simplex.go implements a two-phase, bounded-variable primal simplex
// method over a dense LpProblem, per spec §6 ("LP relaxation ... a
// two-phase primal simplex with LU-factorized basis, refactorizing when
// numerical drift is detected"). Grounded on the gonum parametric-simplex
// reference (other_examples' gonum convex/lp example): this file borrows
// its exact idiom for maintaining a basis — mat.NewDense for the basis
// submatrix and mat.LU.Factorize/Cond/SolveVec for solving basis systems,
// with the basis refactorized after every pivot that changes it — generalized
// from that reference's equality-only standard form to a bounded-variable
// simplex (structural variables may sit at either a finite lower or upper
// bound while nonbasic, not just zero), since the spec's LP rows are a
// mix of <=, =, and >= with per-variable [lo, up] box constraints.
//
// Every structural variable, plus one slack/surplus column per inequality
// row and one artificial column per >=/= row, is modeled uniformly as a
// column of the augmented matrix; "structural" vs "slack" vs "artificial"
// is tracked only by each column's bounds and phase-1 cost.

const (
	lpBigBound   = 1e15
	lpCondRefac  = 1e10
	lpZeroTol    = 1e-9
)

type simplexColumn struct {
	lo, up float64
	// atUpper is false (at lower bound) or true (at upper bound) while the
	// column is nonbasic; meaningless while basic.
	atUpper bool
}

type simplexState struct {
	m, n    int // m = rows, n = total columns (structural + slack + artificial)
	A       *mat.Dense
	c       []float64 // phase-appropriate cost vector, length n
	cols    []simplexColumn
	basis   []int // basis[i] = column index occupying basic row i
	inBasis []bool
	x       []float64 // current value of every column
	lu      mat.LU
	cond    float64
}

// Solve runs the two-phase simplex method on p and returns the result.
// Grounded on the reference's overall Factorize/Cond/SolveVec/refactorize
// loop shape (Parametric in the gonum example), replacing its parametric
// perturbation machinery with a conventional bounded two-phase method.
func Solve(p *LpProblem, tol float64, maxIterations int) *LpResult {
	s, feasible := buildPhase1(p)
	if !feasible {
		return &LpResult{Feasible: false}
	}

	iterations := 0
	ok := s.runSimplex(tol, maxIterations, &iterations)
	if !ok {
		// Cutoff reached before phase 1 proved anything either way: this is
		// NOT a confirmed infeasibility, just a "didn't finish in time".
		return &LpResult{Feasible: false, TimedOut: true, Iterations: iterations}
	}
	// Phase 1 reached optimality: its objective (sum of artificial values)
	// is a confirmed verdict — ~0 means feasible, >0 means genuinely
	// infeasible (no cutoff involved, so TimedOut stays false).
	phase1Obj := 0.0
	for i := p.NumVars + countSlacks(p); i < s.n; i++ {
		phase1Obj += s.x[i]
	}
	if phase1Obj > 1e-6 {
		return &LpResult{Feasible: false, Iterations: iterations}
	}

	s.switchToPhase2(p)
	ok = s.runSimplex(tol, maxIterations, &iterations)
	res := &LpResult{
		Feasible:   true,
		Optimal:    ok,
		TimedOut:   !ok,
		X:          append([]float64(nil), s.x[:p.NumVars]...),
		Iterations: iterations,
	}
	res.Objective = floats.Dot(p.C, res.X)
	return res
}

func countSlacks(p *LpProblem) int {
	n := 0
	for _, r := range p.Rel {
		if r != RelEQ {
			n++
		}
	}
	return n
}

// buildPhase1 augments p into a simplexState whose columns are [structural
// | slack/surplus | artificial], with an initial basic feasible solution
// of "every slack/artificial basic, every structural nonbasic at its
// nearest-to-zero bound" — the standard phase-1 starting point.
func buildPhase1(p *LpProblem) (*simplexState, bool) {
	m := len(p.A)
	numSlack := countSlacks(p)
	numArt := m // one artificial per row, driven out where a slack suffices
	n := p.NumVars + numSlack + numArt

	dense := mat.NewDense(m, n, nil)
	cols := make([]simplexColumn, n)
	for j := 0; j < p.NumVars; j++ {
		lo, up := p.Lo[j], p.Up[j]
		if math.IsInf(lo, -1) {
			lo = -lpBigBound
		}
		if math.IsInf(up, 1) {
			up = lpBigBound
		}
		cols[j] = simplexColumn{lo: lo, up: up}
	}

	slackIdx := p.NumVars
	artIdx := p.NumVars + numSlack
	basis := make([]int, m)
	rhs := make([]float64, m)
	copy(rhs, p.B)

	for i, row := range p.A {
		for j, v := range row {
			dense.Set(i, j, v)
		}
		sign := 1.0
		if rhs[i] < 0 {
			// Normalize to non-negative RHS by flipping the row so the
			// artificial/slack basic start is always feasible at x=0.
			sign = -1.0
			for j := 0; j < p.NumVars; j++ {
				dense.Set(i, j, -dense.At(i, j))
			}
			rhs[i] = -rhs[i]
		}
		switch p.Rel[i] {
		case RelLE:
			dense.Set(i, slackIdx, sign)
			cols[slackIdx] = simplexColumn{lo: 0, up: lpBigBound}
			basis[i] = slackIdx
			slackIdx++
		case RelGE:
			dense.Set(i, slackIdx, -sign)
			cols[slackIdx] = simplexColumn{lo: 0, up: lpBigBound}
			slackIdx++
			dense.Set(i, artIdx, 1)
			cols[artIdx] = simplexColumn{lo: 0, up: lpBigBound}
			basis[i] = artIdx
			artIdx++
		case RelEQ:
			dense.Set(i, artIdx, 1)
			cols[artIdx] = simplexColumn{lo: 0, up: lpBigBound}
			basis[i] = artIdx
			artIdx++
		}
	}

	// Phase-1 cost: 1 on every artificial, 0 elsewhere.
	c := make([]float64, n)
	for j := p.NumVars + numSlack; j < n; j++ {
		c[j] = 1
	}

	x := make([]float64, n)
	for j, col := range cols {
		if col.lo > 0 {
			x[j] = col.lo
		}
	}
	// Basic variable values from the (normalized, non-negative) RHS.
	for i, bi := range basis {
		x[bi] = rhs[i]
	}

	s := &simplexState{m: m, n: n, A: dense, c: c, cols: cols, basis: basis, x: x}
	s.inBasis = make([]bool, n)
	for _, b := range basis {
		s.inBasis[b] = true
	}
	s.refactorize()
	return s, true
}

// switchToPhase2 swaps in the real objective and fixes every artificial
// column's bounds to {0}, so the phase-2 simplex can select but never move
// off zero for an artificial (driving it permanently out of any useful
// basic role, the standard phase-1/phase-2 handoff).
func (s *simplexState) switchToPhase2(p *LpProblem) {
	for j := 0; j < p.NumVars; j++ {
		s.c[j] = p.C[j]
	}
	numSlack := countSlacks(p)
	for j := p.NumVars; j < p.NumVars+numSlack; j++ {
		s.c[j] = 0
	}
	for j := p.NumVars + numSlack; j < s.n; j++ {
		s.c[j] = 0
		s.cols[j] = simplexColumn{lo: 0, up: 0}
	}
}

func (s *simplexState) refactorize() {
	ab := mat.NewDense(s.m, s.m, nil)
	for i, col := range s.basis {
		for r := 0; r < s.m; r++ {
			ab.Set(r, i, s.A.At(r, col))
		}
	}
	s.lu.Factorize(ab)
	s.cond = s.lu.Cond()
}

// runSimplex prices with priceOut's first-improving-column rule and a
// bounded-variable ratio test until optimality or the iteration cutoff.
// Returns false if the cutoff was hit, or the ratio test found no bound on
// the entering direction, before an optimal basis was reached.
func (s *simplexState) runSimplex(tol float64, maxIterations int, iterations *int) bool {
	for *iterations < maxIterations {
		*iterations++
		entering, enterToUpper, improving := s.priceOut(tol)
		if !improving {
			return true // optimal
		}
		leaving, leavingToUpper, step, unbounded := s.ratioTest(entering, enterToUpper)
		if unbounded {
			return false
		}
		s.pivot(entering, enterToUpper, leaving, leavingToUpper, step)
		if leaving != -1 {
			// The basis changed, so the LU factors of the old basis no
			// longer describe it.
			s.refactorize()
		}
	}
	return false
}

// priceOut computes reduced costs for every nonbasic column via
// cB^T B^-1, the same dual-vector computation as the reference's zn
// (cn - A_n^T (B^-T c_B)), and returns the first column whose reduced cost
// indicates moving away from its current bound would improve the
// objective (Bland's-rule-adjacent: first improving column, to guarantee
// termination on degenerate bases).
func (s *simplexState) priceOut(tol float64) (col int, toUpper bool, improving bool) {
	cb := make([]float64, s.m)
	for i, bi := range s.basis {
		cb[i] = s.c[bi]
	}
	y := mat.NewVecDense(s.m, nil)
	s.lu.SolveVec(y, true, mat.NewVecDense(s.m, cb))

	yFlat := make([]float64, s.m)
	for i := 0; i < s.m; i++ {
		yFlat[i] = y.AtVec(i)
	}
	for j := 0; j < s.n; j++ {
		if s.inBasis[j] {
			continue
		}
		aj := mat.Col(nil, j, s.A)
		// Reduced cost c_j - a_j·y, the same cn - A_n^T(B^-T c_B) the
		// reference computes via floats.SubTo after a floats.Dot-driven pass.
		reduced := s.c[j] - floats.Dot(aj, yFlat)
		atUpper := s.cols[j].atUpper
		if !atUpper && reduced < -tol && s.cols[j].up > s.cols[j].lo {
			return j, false, true
		}
		if atUpper && reduced > tol {
			return j, true, true
		}
	}
	return -1, false, false
}

// ratioTest finds how far the entering column can move (increasing from
// its lower bound, or decreasing from its upper bound) before some basic
// variable or the entering variable itself hits a bound, the standard
// bounded-variable ratio test.
func (s *simplexState) ratioTest(entering int, enterToUpper bool) (leaving int, leavingToUpper bool, step float64, unbounded bool) {
	aj := mat.Col(nil, entering, s.A)
	d := mat.NewVecDense(s.m, nil)
	s.lu.SolveVec(d, false, mat.NewVecDense(s.m, aj))

	dir := 1.0
	if enterToUpper {
		dir = -1.0
	}

	maxStep := s.cols[entering].up - s.cols[entering].lo
	leaving = -1
	for i := 0; i < s.m; i++ {
		delta := dir * d.AtVec(i)
		bi := s.basis[i]
		xb := s.x[bi]
		if delta > lpZeroTol {
			room := xb - s.cols[bi].lo
			if room/delta < maxStep {
				maxStep = room / delta
				leaving = i
				leavingToUpper = false
			}
		} else if delta < -lpZeroTol {
			room := xb - s.cols[bi].up
			if room/delta < maxStep {
				maxStep = room / delta
				leaving = i
				leavingToUpper = true
			}
		}
	}
	if maxStep >= lpBigBound {
		return -1, false, 0, true
	}
	return leaving, leavingToUpper, maxStep, false
}

// pivot applies the ratio-test result: moves the entering column by step
// (in the appropriate direction), updates every basic variable by its
// share of that movement, and — if a basic variable hit a bound — swaps it
// out of the basis in favor of the entering column.
func (s *simplexState) pivot(entering int, enterToUpper bool, leaving int, leavingToUpper bool, step float64) {
	aj := mat.Col(nil, entering, s.A)
	d := mat.NewVecDense(s.m, nil)
	s.lu.SolveVec(d, false, mat.NewVecDense(s.m, aj))

	dir := 1.0
	if enterToUpper {
		dir = -1.0
	}
	s.x[entering] += dir * step
	for i, bi := range s.basis {
		s.x[bi] -= dir * step * d.AtVec(i)
	}

	if leaving == -1 {
		// Entering variable hit its own opposite bound; stays nonbasic.
		s.cols[entering].atUpper = !s.cols[entering].atUpper
		return
	}
	leavingCol := s.basis[leaving]
	s.inBasis[leavingCol] = false
	s.cols[leavingCol].atUpper = leavingToUpper
	s.x[leavingCol] = s.cols[leavingCol].lo
	if leavingToUpper {
		s.x[leavingCol] = s.cols[leavingCol].up
	}
	s.basis[leaving] = entering
	s.inBasis[entering] = true
}
