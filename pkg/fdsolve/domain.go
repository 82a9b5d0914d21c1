package fdsolve

import "fmt"

// bitsetMaxSpan bounds how wide (max-min+1) a domain can be before the
// bitset representation is abandoned in favor of the sparse set, matching
// the teacher's BitSetDomain doc comment on memory scaling with maxValue
// (pkg/minikanren/domain.go): (span+63)/64 words grows linearly with span,
// so very wide sparse domains use the sparse set instead, whose footprint
// scales with element count rather than span.
const bitsetMaxSpan = 1 << 16

// IntDomain represents a finite, non-empty set of int64 values. All
// operations return a new IntDomain rather than mutating the receiver,
// mirroring the teacher's immutable-return-new-instance Domain interface
// (pkg/minikanren/domain.go) adapted to the spec's vocabulary
// (min/max/size/contains/remove_below/...). The variable store
// (vars.go) is what actually performs in-place mutation, by swapping a
// VarId's slot to point at the freshly returned IntDomain and recording the
// displaced one on the trail.
type IntDomain interface {
	// Min returns the smallest value in the domain.
	Min() int64
	// Max returns the largest value in the domain.
	Max() int64
	// Size returns the number of values in the domain.
	Size() int
	// Contains reports whether v is a member.
	Contains(v int64) bool
	// IsEmpty reports whether the domain has no members.
	IsEmpty() bool
	// IsSingleton reports whether the domain has exactly one member.
	IsSingleton() bool
	// SingletonValue returns the sole member; behavior is undefined if
	// IsSingleton() is false.
	SingletonValue() int64
	// RemoveBelow returns a domain with every value < v removed.
	RemoveBelow(v int64) IntDomain
	// RemoveAbove returns a domain with every value > v removed.
	RemoveAbove(v int64) IntDomain
	// Remove returns a domain with v removed (a no-op if v is absent).
	Remove(v int64) IntDomain
	// Fix returns a domain containing only v.
	Fix(v int64) IntDomain
	// ForEach calls f with every member, in ascending order.
	ForEach(f func(int64))
	// Clone returns an independent copy (used by the trail).
	Clone() IntDomain
	fmt.Stringer
}

// NewIntRange constructs the cheapest representation for the closed
// interval [lo, hi]: a range domain, per spec §3 ("Integer range ... the
// cheap representation most variables live in").
func NewIntRange(lo, hi int64) IntDomain {
	return rangeDomain{lo: lo, hi: hi}
}

// promoteForHole returns a domain equal to full minus the single value
// removed, choosing bitset or sparse-set representation by span, per the
// module map's domain_bitset.go / domain_sparseset.go split. Used when
// rangeDomain.Remove needs to punch an interior hole.
func promoteForHole(lo, hi int64, removed int64) IntDomain {
	span := hi - lo + 1
	if span <= bitsetMaxSpan {
		bs := newBitsetDomain(lo, hi)
		return bs.Remove(removed)
	}
	ss := newSparseSetDomain(lo, hi)
	return ss.Remove(removed)
}

// collapseIfContiguous returns a rangeDomain when d's members form a
// contiguous run (no interior holes), else returns d unchanged. Called
// after every hole-removal so domains demote back to the cheap
// representation once gaps disappear, per spec §4.1
// ("may convert a sparse set to range or vice versa when gaps disappear").
func collapseIfContiguous(d IntDomain) IntDomain {
	if d.IsEmpty() {
		return d
	}
	lo, hi := d.Min(), d.Max()
	if int64(d.Size()) == hi-lo+1 {
		return rangeDomain{lo: lo, hi: hi}
	}
	return d
}
