package fdsolve

// trailEntry is enough information to undo one domain mutation: the
// variable and its prior domain representation, per spec §3. Grounded
// directly on the teacher's FDChange (pkg/minikanren/fd.go: `type
// FDChange struct { vid int; domain BitSet }`), generalized to carry
// either an IntDomain or a FloatDomain depending on kind, since this
// engine supports both.
type trailEntry struct {
	v          VarId
	kind       Kind
	priorInt   IntDomain
	priorFloat FloatDomain
}

// Trail is the undo log backing checkpoint/restore, per spec §4.2. It is a
// flat append-only stack; a checkpoint is simply a remembered length, and
// restore pops and undoes everything back to that length — directly
// grounded on the teacher's FDStore.trail + snapshot()/undo() pair
// (pkg/minikanren/fd.go lines ~357-370), which does exactly this for its
// single BitSet representation.
type Trail struct {
	entries []trailEntry
}

func newTrail() *Trail {
	return &Trail{entries: make([]trailEntry, 0, 1024)}
}

// Len returns the current trail length, usable as a checkpoint mark.
func (t *Trail) Len() int { return len(t.entries) }

func (t *Trail) pushInt(v VarId, prior IntDomain) {
	t.entries = append(t.entries, trailEntry{v: v, kind: KindInt, priorInt: prior})
}

func (t *Trail) pushFloat(v VarId, prior FloatDomain) {
	t.entries = append(t.entries, trailEntry{v: v, kind: KindFloat, priorFloat: prior})
}

// undoTo restores vs to the state it was in when the trail had length
// `mark`, by replaying entries in reverse. O(Δ) in the number of changes
// between mark and the current length, per spec §4.2. Returns every
// variable touched, in undo order, so Context.Restore can re-notify and
// re-log them the same way a forward narrow does.
func (t *Trail) undoTo(vs *VarStore, mark int) []VarId {
	touched := make([]VarId, 0, len(t.entries)-mark)
	for i := len(t.entries) - 1; i >= mark; i-- {
		e := t.entries[i]
		if e.kind == KindInt {
			vs.slots[e.v].intDom = e.priorInt
		} else {
			vs.slots[e.v].floatDom = e.priorFloat
		}
		touched = append(touched, e.v)
	}
	t.entries = t.entries[:mark]
	return touched
}
