package fdsolve

// lp_bridge.go is the root-node-only integration between the propagator
// registry and the simplex solver, per spec §4.6 steps 1-3 and 6-7:
// extract every propagator's LinearView, convert current domains to LP
// bounds, solve, and tighten each touched variable's domain toward the
// LP-reported bound — falling back silently to pure propagation whenever
// extraction is too thin or the problem exceeds the configured ceilings.
// There is no teacher equivalent (gokanlogic has no LP layer); the
// extraction/solve/apply shape follows the spec text directly, and the
// dense-matrix construction follows lp_problem.go's ABI.

// runLPRelaxation is invoked once, before search begins, by the model's
// Solve/Minimize/Maximize entry points (model.go). It never returns a
// domain-widening error: the only failure it can report is
// errInconsistency, when the relaxation itself proves the root
// infeasible — a valid early Unsat, exactly as a propagator would report.
func runLPRelaxation(ctx *Context, propagators []Propagator) error {
	if !ctx.cfg.LPEnabled {
		return nil
	}
	rows := extractLinearRows(propagators)
	n := ctx.vars.Len()
	if len(rows) < 2 || n < 2 {
		return nil // too few constraints/variables to bother
	}
	if n > ctx.cfg.LPMaxVars || len(rows) > ctx.cfg.LPMaxConstraints {
		return nil
	}

	feasibility := buildLPProblem(ctx, rows, n, nil)
	result := Solve(feasibility, ctx.cfg.LPTolerance, ctx.cfg.LPMaxIterations)
	ctx.stats.LPInvocations++
	ctx.stats.LPIterations += result.Iterations
	if !result.Feasible {
		if result.TimedOut {
			// The simplex ran out of iterations without confirming
			// infeasibility either way; falling back silently to pure
			// propagation is the only sound move (spec §4.6 step 7) — LP
			// may only ever prune, never wrongly declare the whole CSP
			// UNSAT on a merely-slow relaxation.
			return nil
		}
		return errInconsistency
	}

	touched := columnsUsed(rows, n)
	for j := 0; j < n; j++ {
		if !touched[j] {
			continue
		}
		if err := tightenColumn(ctx, rows, n, VarId(j)); err != nil {
			return err
		}
	}
	return nil
}

// linearRow is the normalized form of one LinearView row: every
// constraint is folded to a plain coeffs/vars/rel/rhs tuple regardless of
// which propagator produced it (spec §4.6 step 1-2, "extracts... queries
// an optional capability... converts... to standard form").
type linearRow struct {
	coeffs []float64
	vars   []VarId
	rel    Relation
	rhs    float64
}

func extractLinearRows(propagators []Propagator) []linearRow {
	var rows []linearRow
	for _, p := range propagators {
		lv, ok := p.(LinearView)
		if !ok {
			continue
		}
		coeffs, vars, rel, rhs := lv.LinearRow()
		rows = append(rows, linearRow{coeffs: coeffs, vars: vars, rel: rel, rhs: rhs})
	}
	return rows
}

func columnsUsed(rows []linearRow, n int) []bool {
	used := make([]bool, n)
	for _, r := range rows {
		for i, v := range r.vars {
			if r.coeffs[i] != 0 {
				used[v] = true
			}
		}
	}
	return used
}

// buildLPProblem lays out rows into a dense A of n columns (one per model
// variable, by VarId), with lo/up taken from ctx's live domains and an
// objective of obj (nil for pure feasibility, i.e. c = 0), per spec §4.6
// steps 3-4 ("extracts variable bounds from current domains... builds an
// LpProblem (c, A, b, lo, up)").
func buildLPProblem(ctx *Context, rows []linearRow, n int, obj map[VarId]float64) *LpProblem {
	p := &LpProblem{
		NumVars: n,
		C:       make([]float64, n),
		A:       make([][]float64, len(rows)),
		Rel:     make([]Relation, len(rows)),
		B:       make([]float64, len(rows)),
		Lo:      make([]float64, n),
		Up:      make([]float64, n),
	}
	for v, c := range obj {
		p.C[v] = c
	}
	for j := 0; j < n; j++ {
		lo, hi := boundsOf(ctx, VarId(j))
		p.Lo[j] = lo.AsFloat()
		p.Up[j] = hi.AsFloat()
	}
	for i, r := range rows {
		row := make([]float64, n)
		for k, v := range r.vars {
			row[v] += r.coeffs[k]
		}
		p.A[i] = row
		p.Rel[i] = r.rel
		p.B[i] = r.rhs
	}
	return p
}

// tightenColumn runs the classic optimality-based bound-tightening pair of
// LPs for one variable — minimize x_j, then maximize x_j, subject to the
// same relaxed constraints — and applies whichever bound is both feasible
// and strictly tighter than the variable's current domain (spec §4.6 step
// 6: "tightening... toward the LP-reported bound... when the LP value lies
// strictly inside the current domain... using try_set_min/try_set_max").
func tightenColumn(ctx *Context, rows []linearRow, n int, v VarId) error {
	minProb := buildLPProblem(ctx, rows, n, map[VarId]float64{v: 1})
	minRes := Solve(minProb, ctx.cfg.LPTolerance, ctx.cfg.LPMaxIterations)
	ctx.stats.LPIterations += minRes.Iterations
	if minRes.Feasible && minRes.Optimal {
		if err := applyLowerBound(ctx, v, minRes.X[v]); err != nil {
			return err
		}
	}

	maxProb := buildLPProblem(ctx, rows, n, map[VarId]float64{v: -1})
	maxRes := Solve(maxProb, ctx.cfg.LPTolerance, ctx.cfg.LPMaxIterations)
	ctx.stats.LPIterations += maxRes.Iterations
	if maxRes.Feasible && maxRes.Optimal {
		if err := applyUpperBound(ctx, v, maxRes.X[v]); err != nil {
			return err
		}
	}
	return nil
}

func applyLowerBound(ctx *Context, v VarId, lpLo float64) error {
	lo, _ := boundsOf(ctx, v)
	if lpLo <= lo.AsFloat()+ctx.cfg.LPTolerance {
		return nil // not strictly inside the current domain
	}
	bound := floatOrIntVal(ctx, v, lpLo, true)
	return narrowLower(ctx, v, bound)
}

func applyUpperBound(ctx *Context, v VarId, lpUp float64) error {
	_, hi := boundsOf(ctx, v)
	if lpUp >= hi.AsFloat()-ctx.cfg.LPTolerance {
		return nil
	}
	bound := floatOrIntVal(ctx, v, lpUp, false)
	return narrowUpper(ctx, v, bound)
}
