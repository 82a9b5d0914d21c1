package fdsolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRangeBasics(t *testing.T) {
	d := NewIntRange(3, 7)
	assert.Equal(t, int64(3), d.Min())
	assert.Equal(t, int64(7), d.Max())
	assert.Equal(t, 5, d.Size())
	assert.True(t, d.Contains(5))
	assert.False(t, d.Contains(8))
	assert.False(t, d.IsEmpty())
	assert.False(t, d.IsSingleton())
}

func TestIntRangeFix(t *testing.T) {
	d := NewIntRange(0, 100)
	fixed := d.Fix(42)
	require.True(t, fixed.IsSingleton())
	assert.Equal(t, int64(42), fixed.SingletonValue())
}

func TestIntRangeRemoveBelowAbove(t *testing.T) {
	d := NewIntRange(0, 9)
	narrowed := d.RemoveBelow(3).RemoveAbove(6)
	assert.Equal(t, int64(3), narrowed.Min())
	assert.Equal(t, int64(6), narrowed.Max())
	assert.Equal(t, 4, narrowed.Size())
}

func TestIntRangeRemoveBelowEmptiesPastMax(t *testing.T) {
	d := NewIntRange(0, 5)
	assert.True(t, d.RemoveBelow(6).IsEmpty())
	assert.True(t, d.RemoveAbove(-1).IsEmpty())
}

// TestPromoteForHolePunchesInteriorGap checks removing an interior value
// from a range produces a domain that still reports every remaining
// member and correctly excludes the hole.
func TestPromoteForHolePunchesInteriorGap(t *testing.T) {
	holed := promoteForHole(0, 9, 5)
	assert.Equal(t, 9, holed.Size())
	assert.False(t, holed.Contains(5))
	for _, v := range []int64{0, 1, 2, 3, 4, 6, 7, 8, 9} {
		assert.True(t, holed.Contains(v), "expected %d present", v)
	}
}

// TestPromoteForHoleChoosesSparseSetForWideSpans confirms the bitset/sparse
// split switches representation above bitsetMaxSpan without changing
// observable behavior.
func TestPromoteForHoleChoosesSparseSetForWideSpans(t *testing.T) {
	wide := promoteForHole(0, bitsetMaxSpan+10, 3)
	assert.False(t, wide.Contains(3))
	assert.True(t, wide.Contains(4))
	assert.Equal(t, int64(0), wide.Min())
	assert.Equal(t, int64(bitsetMaxSpan+10), wide.Max())
}

// TestCollapseIfContiguousDemotesBackToRange verifies that a promoted
// domain whose only removed value is its max edge (so its members are still
// one contiguous run) collapses back to the cheap rangeDomain representation.
func TestCollapseIfContiguousDemotesBackToRange(t *testing.T) {
	holed := promoteForHole(0, 9, 9) // hole at the max edge, not interior
	collapsed := collapseIfContiguous(holed)
	_, isRange := collapsed.(rangeDomain)
	assert.True(t, isRange, "expected collapse back to rangeDomain, got %T", collapsed)
	assert.Equal(t, int64(0), collapsed.Min())
	assert.Equal(t, int64(8), collapsed.Max())
}

func TestCollapseIfContiguousLeavesGapsAlone(t *testing.T) {
	holed := promoteForHole(0, 9, 5)
	collapsed := collapseIfContiguous(holed)
	assert.Equal(t, 9, collapsed.Size())
	assert.False(t, collapsed.Contains(5))
}

func TestIntRangeForEachVisitsAscending(t *testing.T) {
	d := NewIntRange(1, 5)
	var seen []int64
	d.ForEach(func(v int64) { seen = append(seen, v) })
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seen)
}

func TestIntRangeCloneMatchesOriginal(t *testing.T) {
	d := NewIntRange(1, 5)
	clone := d.Clone()
	assert.Equal(t, d.Min(), clone.Min())
	assert.Equal(t, d.Max(), clone.Max())
}

// TestSparseSetRemoveBelowExcludesDroppedValues is a regression test for a
// swap-and-repoint bug: RemoveBelow/RemoveAbove on the sparse-set
// representation must leave Contains false for every dropped value, not
// just shrink size while leaving a stale pos entry pointing back into the
// active window.
func TestSparseSetRemoveBelowExcludesDroppedValues(t *testing.T) {
	wide := promoteForHole(0, bitsetMaxSpan+10, 9999) // force sparse-set representation, hole far from the assertions below
	ss, ok := wide.(sparseSetDomain)
	require.True(t, ok, "expected sparseSetDomain, got %T", wide)

	narrowed := ss.RemoveBelow(5)
	require.Equal(t, int64(5), narrowed.Min())
	for _, v := range []int64{0, 1, 2, 3, 4} {
		assert.False(t, narrowed.Contains(v), "expected %d removed by RemoveBelow", v)
	}
	assert.True(t, narrowed.Contains(5))
	assert.True(t, narrowed.Contains(6))
}

func TestSparseSetRemoveAboveExcludesDroppedValues(t *testing.T) {
	wide := promoteForHole(0, bitsetMaxSpan+10, 1<<30)
	ss, ok := wide.(sparseSetDomain)
	require.True(t, ok, "expected sparseSetDomain, got %T", wide)

	narrowed := ss.RemoveAbove(5)
	require.Equal(t, int64(5), narrowed.Max())
	for i := int64(6); i <= bitsetMaxSpan+10; i++ {
		assert.False(t, narrowed.Contains(i), "expected %d removed by RemoveAbove", i)
	}
	assert.True(t, narrowed.Contains(5))
	assert.True(t, narrowed.Contains(4))
}

// TestSparseSetRemoveBelowThenAboveConverges exercises both operations in
// sequence against a sparse set with one hole (at 3, below the kept
// window), checking the final
// domain's member set is exactly the intersection, with no resurrected
// values from either pass.
func TestSparseSetRemoveBelowThenAboveConverges(t *testing.T) {
	wide := promoteForHole(0, bitsetMaxSpan+10, 3)
	ss, ok := wide.(sparseSetDomain)
	require.True(t, ok, "expected sparseSetDomain, got %T", wide)

	narrowed := ss.RemoveBelow(10).RemoveAbove(20)
	for v := int64(0); v <= bitsetMaxSpan+10; v++ {
		want := v >= 10 && v <= 20 && v != 3
		assert.Equal(t, want, narrowed.Contains(v), "value %d", v)
	}
}
