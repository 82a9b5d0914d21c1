package fdsolve

// EventKind classifies the strength of a domain mutation, per spec §3.
// A single mutation is tagged by the strongest applicable kind:
// Fixed > BoundChanged > DomainShrunk.
type EventKind int

const (
	// DomainShrunk means a value was removed without affecting either bound.
	DomainShrunk EventKind = iota
	// BoundChanged means min and/or max moved.
	BoundChanged
	// FixedToValue means the domain collapsed to a single value.
	FixedToValue
)

// Event is the (VarId, kind, delta) triple the spec describes. Var and
// Kind are always populated by Context's event log (NarrowInt, NarrowFloat,
// and Restore's backtrack-driven reverts all append one); Delta is left at
// its zero value, since a single int64 can't describe an arbitrary
// multi-value hole (RemoveBelow/RemoveAbove) or a float bound — consumers
// needing the new bound just re-read it from the live domain, keyed by
// Var. Grounded on the teacher's bare `queue []int` enqueue-by-id pattern
// (pkg/minikanren/fd.go's FDStore.enqueue), generalized into a real event
// log (Context.EventMark/EventsSince) carrying enough information for
// incremental propagators (constraints_sum.go) to update cached sums by
// visiting only the variables that actually changed, not the whole vector.
type Event struct {
	Var   VarId
	Kind  EventKind
	Delta int64
}
