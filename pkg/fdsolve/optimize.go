package fdsolve

// Minimize runs branch-and-bound search, returning the best solution found
// for which obj's value is smallest, per spec §7 ("optimize: minimize/
// maximize via incumbent cutoff — each new incumbent tightens the
// objective's domain before the next node, so later branches can never
// regress"). Grounded on the teacher's SolveOptimalWithOptions
// (pkg/minikanren/optimize.go): "Incumbent cutoff is injected by tightening
// the objective domain at nodes: minimize: obj <= (best-1)", reimplemented
// here by narrowing obj's domain in place each time the incumbent improves
// (tightenIncumbent), rather than the teacher's context-cancellation-based node/time
// limits (this engine's Context.Deadlined already covers the time axis).
func (e *Engine) Minimize(obj VarId) (*Solution, error) {
	return e.optimize(obj, true)
}

// Maximize is Minimize's mirror image.
func (e *Engine) Maximize(obj VarId) (*Solution, error) {
	return e.optimize(obj, false)
}

func (e *Engine) optimize(obj VarId, minimize bool) (*Solution, error) {
	var best *Solution
	var bestObj Val

	err := e.Run(func(sol Solution) bool {
		v := sol.Get(obj)
		if best == nil {
			best = &sol
			bestObj = v
			e.tightenIncumbent(obj, bestObj, minimize)
			return true
		}
		improved := v.Cmp(bestObj) < 0
		if !minimize {
			improved = v.Cmp(bestObj) > 0
		}
		if improved {
			best = &sol
			bestObj = v
			e.tightenIncumbent(obj, bestObj, minimize)
		}
		return true
	})
	if err != nil {
		if se, ok := err.(*SolverError); ok && se.Kind == KindTimeout {
			se.Best = best
			return best, se
		}
		return best, err
	}
	if best == nil {
		return nil, ErrNoSolution
	}
	return best, nil
}

// tightenIncumbent narrows obj's domain so the nodes explored next can only
// find a strictly better objective, matching the teacher's
// "minimize: obj <= (best-1)" / "maximize: obj >= (best+1)" cutoff.
// It writes obj's slot directly and records no trail entry. A later Restore
// that pops a trail entry for obj (one recorded when obj was narrowed after
// that checkpoint) writes obj's earlier domain back, which drops the
// cutoff; from then on those branches are not pruned by it. optimize still
// keeps only strictly improving solutions, so the returned best is the same
// either way.
func (e *Engine) tightenIncumbent(obj VarId, bestObj Val, minimize bool) {
	if e.ctx.vars.Kind(obj) == KindInt {
		if minimize {
			e.ctx.vars.slots[obj].intDom = e.ctx.vars.IntDomain(obj).RemoveAbove(bestObj.AsInt() - 1)
		} else {
			e.ctx.vars.slots[obj].intDom = e.ctx.vars.IntDomain(obj).RemoveBelow(bestObj.AsInt() + 1)
		}
		return
	}
	step := ulpStep(e.ctx.cfg.FloatPrecisionDigits)
	if minimize {
		e.ctx.vars.slots[obj].floatDom = e.ctx.vars.FloatDomainOf(obj).RemoveAbove(bestObj.AsFloat() - step)
	} else {
		e.ctx.vars.slots[obj].floatDom = e.ctx.vars.FloatDomainOf(obj).RemoveBelow(bestObj.AsFloat() + step)
	}
}
