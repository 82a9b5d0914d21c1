package fdsolve

// elementConstraint enforces target = array[index], where array is a fixed
// slice of int64 constants and index/target are variables, per spec §5
// ("element: table lookup by variable index"). There is no teacher
// equivalent; grounded in the same bounds-consistency idiom as the other
// constraints_*.go files, specialized to a constant table rather than a
// vector of variables.
type elementConstraint struct {
	array []int64
	index VarId
	target VarId
}

// NewElement returns a Propagator enforcing target = array[index], with
// index implicitly restricted to [0, len(array)-1].
func NewElement(array []int64, index, target VarId) Propagator {
	a := make([]int64, len(array))
	copy(a, array)
	return &elementConstraint{array: a, index: index, target: target}
}

func (c *elementConstraint) Vars() []VarId { return []VarId{c.index, c.target} }
func (c *elementConstraint) Name() string  { return "element" }

func (c *elementConstraint) Propagate(ctx *Context) error {
	if err := ctx.NarrowInt(c.index, ctx.vars.IntDomain(c.index).RemoveBelow(0)); err != nil {
		return err
	}
	if err := ctx.NarrowInt(c.index, ctx.vars.IntDomain(c.index).RemoveAbove(int64(len(c.array)-1))); err != nil {
		return err
	}

	idxDom := ctx.vars.IntDomain(c.index)
	tgtLo, tgtHi := boundsOf(ctx, c.target)

	// Forward: target's bounds can't exceed the min/max of array[i] over
	// every i still feasible for index.
	first := true
	var lo, hi int64
	idxDom.ForEach(func(i int64) {
		v := c.array[i]
		if first {
			lo, hi = v, v
			first = false
		} else {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	})
	if idxDom.IsEmpty() {
		return errInconsistency
	}
	if err := ctx.NarrowInt(c.target, ctx.vars.IntDomain(c.target).RemoveBelow(lo)); err != nil {
		return err
	}
	if err := ctx.NarrowInt(c.target, ctx.vars.IntDomain(c.target).RemoveAbove(hi)); err != nil {
		return err
	}

	// Backward: remove any index i whose array[i] falls outside target's
	// (now possibly narrower) bounds.
	tgtLo, tgtHi = boundsOf(ctx, c.target)
	nd := ctx.vars.IntDomain(c.index)
	idxDom.ForEach(func(i int64) {
		v := c.array[i]
		if v < tgtLo.AsInt() || v > tgtHi.AsInt() {
			nd = nd.Remove(i)
		}
	})
	return ctx.NarrowInt(c.index, nd)
}

// flattenRowMajor2D lays out a rows x cols table into one row-major slice,
// cell [i][j] at offset i*cols+j, the same offset convention as the
// katalvlaran-lvlath matrix package's Dense.At/Set (impl_dense.go).
// Panics if the rows aren't all the same length.
func flattenRowMajor2D(array [][]int64) (flat []int64, cols int) {
	cols = len(array[0])
	flat = make([]int64, 0, len(array)*cols)
	for _, row := range array {
		if len(row) != cols {
			panic("fdsolve: flattenRowMajor2D: ragged rows")
		}
		flat = append(flat, row...)
	}
	return flat, cols
}

// flattenRowMajor3D lays out a rows x cols x depth cuboid into one row-major
// slice, cell [i][j][k] at offset (i*cols+j)*depth+k, the 3-D generalization
// of flattenRowMajor2D's offset convention.
func flattenRowMajor3D(array [][][]int64) (flat []int64, cols, depth int) {
	cols = len(array[0])
	depth = len(array[0][0])
	flat = make([]int64, 0, len(array)*cols*depth)
	for _, plane := range array {
		if len(plane) != cols {
			panic("fdsolve: flattenRowMajor3D: ragged rows")
		}
		for _, row := range plane {
			if len(row) != depth {
				panic("fdsolve: flattenRowMajor3D: ragged rows")
			}
			flat = append(flat, row...)
		}
	}
	return flat, cols, depth
}
