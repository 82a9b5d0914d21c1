package fdsolve

import "sort"

// allDifferentConstraint enforces generalized arc consistency (GAC) on a
// set of int variables, via Régin's algorithm: maximum bipartite matching
// between variables and values, followed by value-graph SCC decomposition
// to identify every (variable, value) edge that cannot participate in any
// complete matching. Directly grounded on the teacher's AllDifferent
// (pkg/minikanren/propagation.go: maxMatching/augment/buildValueGraph/
// computeSCCs), generalized from the teacher's fixed 1..maxVal positive
// value range to an arbitrary int64 span by offsetting every value by the
// minimum bound seen across all variables, and adapted from the teacher's
// copy-on-write SolverState to this engine's Context/NarrowInt mutation.
type allDifferentConstraint struct {
	vars []VarId
}

// NewAllDifferent returns a Propagator enforcing that every variable in
// vars takes a distinct value. Panics if len(vars) == 0.
func NewAllDifferent(vars []VarId) Propagator {
	if len(vars) == 0 {
		panic("fdsolve: NewAllDifferent requires at least one variable")
	}
	vs := make([]VarId, len(vars))
	copy(vs, vars)
	return &allDifferentConstraint{vars: vs}
}

func (c *allDifferentConstraint) Vars() []VarId { return c.vars }
func (c *allDifferentConstraint) Name() string  { return "all_different" }

func (c *allDifferentConstraint) Propagate(ctx *Context) error {
	n := len(c.vars)
	domains := make([]IntDomain, n)
	minVal, maxVal := int64(0), int64(0)
	for i, v := range c.vars {
		d := ctx.vars.IntDomain(v)
		domains[i] = d
		if i == 0 || d.Min() < minVal {
			minVal = d.Min()
		}
		if i == 0 || d.Max() > maxVal {
			maxVal = d.Max()
		}
	}
	span := int(maxVal - minVal + 1)

	// Quick failure: fewer distinct reachable values than variables.
	seen := make(map[int64]bool)
	for _, d := range domains {
		d.ForEach(func(v int64) { seen[v] = true })
	}
	if len(seen) < n {
		return errInconsistency
	}

	matching, matched := c.maxMatching(domains, minVal, span)
	if matched < n {
		return errInconsistency
	}

	varToVal := make([]int64, n)
	for i := range varToVal {
		varToVal[i] = minVal - 1 // sentinel: unmatched
	}
	for val, vi := range matching {
		if vi >= 0 {
			varToVal[vi] = val
		}
	}

	g := c.buildValueGraph(domains, varToVal, minVal, span)
	sccs := computeSCCs(g)

	// Free value nodes: values present in some domain but unmatched.
	present := make([]bool, span)
	for _, d := range domains {
		d.ForEach(func(v int64) { present[int(v-minVal)] = true })
	}
	var freeValueNodes []int
	for i := 0; i < span; i++ {
		val := minVal + int64(i)
		if present[i] && matching[val] == -1 {
			freeValueNodes = append(freeValueNodes, n+i)
		}
	}

	reachable := make([]bool, g.size)
	if len(freeValueNodes) > 0 {
		stack := append([]int(nil), freeValueNodes...)
		for _, node := range freeValueNodes {
			reachable[node] = true
		}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, w := range g.adj[v] {
				if !reachable[w] {
					reachable[w] = true
					stack = append(stack, w)
				}
			}
		}
	}

	for i, v := range c.vars {
		varNode := i
		varSCC := sccs[varNode]
		var toRemove []int64
		domains[i].ForEach(func(val int64) {
			if varToVal[i] == val {
				return
			}
			valNode := n + int(val-minVal)
			keep := false
			if len(freeValueNodes) > 0 {
				keep = !(reachable[varNode] && !reachable[valNode])
			} else {
				keep = varSCC == sccs[valNode]
			}
			if !keep {
				toRemove = append(toRemove, val)
			}
		})
		if len(toRemove) == 0 {
			continue
		}
		nd := domains[i]
		for _, val := range toRemove {
			nd = nd.Remove(val)
		}
		if err := ctx.NarrowInt(v, nd); err != nil {
			return err
		}
		domains[i] = nd
	}
	return nil
}

// maxMatching computes a maximum bipartite matching from variables to
// values, matching singletons first for determinism, then augmenting for
// the rest — identical structure to the teacher's maxMatching/augment.
func (c *allDifferentConstraint) maxMatching(domains []IntDomain, minVal int64, span int) (map[int64]int, int) {
	n := len(domains)
	matchVal := make([]int, span)
	for i := range matchVal {
		matchVal[i] = -1
	}
	matchVar := make([]int, n)
	for i := range matchVar {
		matchVar[i] = -1
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		di, dj := domains[order[i]].Size(), domains[order[j]].Size()
		if di == 1 && dj != 1 {
			return true
		}
		if dj == 1 && di != 1 {
			return false
		}
		return di < dj
	})

	matched := 0
	for _, vi := range order {
		if domains[vi].IsSingleton() {
			val := int(domains[vi].SingletonValue() - minVal)
			if matchVal[val] == -1 {
				matchVal[val] = vi
				matchVar[vi] = val
				matched++
			}
		}
	}

	visited := make([]bool, span)
	for _, vi := range order {
		if matchVar[vi] != -1 {
			continue
		}
		for i := range visited {
			visited[i] = false
		}
		if augmentMatch(vi, domains, minVal, matchVal, matchVar, visited) {
			matched++
		}
	}

	result := make(map[int64]int, span)
	for i := 0; i < span; i++ {
		result[minVal+int64(i)] = matchVal[i]
	}
	return result, matched
}

func augmentMatch(vi int, domains []IntDomain, minVal int64, matchVal, matchVar []int, visited []bool) bool {
	found := false
	domains[vi].ForEach(func(val int64) {
		if found {
			return
		}
		idx := int(val - minVal)
		if visited[idx] {
			return
		}
		visited[idx] = true
		if matchVal[idx] == -1 {
			matchVal[idx] = vi
			matchVar[vi] = idx
			found = true
			return
		}
		if augmentMatch(matchVal[idx], domains, minVal, matchVal, matchVar, visited) {
			matchVal[idx] = vi
			matchVar[vi] = idx
			found = true
		}
	})
	return found
}

// valueGraph is the alternating-path graph over n variable nodes (0..n-1)
// and span value nodes (n..n+span-1), identical in shape to the teacher's.
type valueGraph struct {
	adj  [][]int
	size int
}

func (c *allDifferentConstraint) buildValueGraph(domains []IntDomain, varToVal []int64, minVal int64, span int) *valueGraph {
	n := len(domains)
	g := &valueGraph{adj: make([][]int, n+span), size: n + span}
	for vi := 0; vi < n; vi++ {
		matchedVal := varToVal[vi]
		domains[vi].ForEach(func(val int64) {
			valNode := n + int(val-minVal)
			if val == matchedVal {
				g.adj[vi] = append(g.adj[vi], valNode)
			} else {
				g.adj[valNode] = append(g.adj[valNode], vi)
			}
		})
	}
	return g
}

// computeSCCs runs Tarjan's algorithm, identical structure to the
// teacher's computeSCCs, generalized to an iterative stack-based
// implementation since Go has no tail-call optimization and the teacher's
// recursive form can overflow the goroutine stack on domains in the
// thousands.
func computeSCCs(g *valueGraph) []int {
	scc := make([]int, g.size)
	for i := range scc {
		scc[i] = -1
	}
	indices := make([]int, g.size)
	lowlink := make([]int, g.size)
	onStack := make([]bool, g.size)
	for i := range indices {
		indices[i] = -1
	}
	var stack []int
	index := 0
	sccCount := 0

	type frame struct {
		v     int
		i     int // next child index to visit
	}
	for start := 0; start < g.size; start++ {
		if indices[start] != -1 {
			continue
		}
		var work []frame
		work = append(work, frame{v: start})
		indices[start] = index
		lowlink[start] = index
		index++
		stack = append(stack, start)
		onStack[start] = true

		for len(work) > 0 {
			top := &work[len(work)-1]
			if top.i < len(g.adj[top.v]) {
				w := g.adj[top.v][top.i]
				top.i++
				if indices[w] == -1 {
					indices[w] = index
					lowlink[w] = index
					index++
					stack = append(stack, w)
					onStack[w] = true
					work = append(work, frame{v: w})
				} else if onStack[w] {
					if indices[w] < lowlink[top.v] {
						lowlink[top.v] = indices[w]
					}
				}
				continue
			}
			// Done with v's children; pop and propagate lowlink to parent.
			v := top.v
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := &work[len(work)-1]
				if lowlink[v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[v]
				}
			}
			if lowlink[v] == indices[v] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc[w] = sccCount
					if w == v {
						break
					}
				}
				sccCount++
			}
		}
	}
	return scc
}

