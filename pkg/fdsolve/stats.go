package fdsolve

import "time"

// Stats accumulates per-solve statistics, grounded on the teacher's
// SolverMonitor (referenced throughout pkg/minikanren/search.go and fd.go:
// RecordNode, RecordBacktrack, RecordTrailSize, RecordQueueSize,
// RecordConstraint). Unlike the teacher, Stats lives directly on the
// Context (exposed through Model.Stats) rather than behind an optional
// monitor pointer, since the spec
// requires statistics unconditionally (§6).
type Stats struct {
	Propagations int64
	Nodes        int64
	Backtracks   int64
	Solutions    int64

	// TrailHighWater and QueueHighWater are the largest sizes the trail and
	// event queue ever reached during the solve. Not part of the spec's
	// required table (§6) but carried as ambient observability, matching
	// the teacher's RecordTrailSize/RecordQueueSize.
	TrailHighWater int
	QueueHighWater int

	// LPInvocations counts how many times the LP bridge ran its relaxation
	// (0 or 1 per solve call, since the bridge only ever runs once at the
	// root); the per-variable tightening solves inside one run are not
	// counted separately.
	LPInvocations int
	// LPIterations sums simplex pivot counts across phase I and phase II.
	LPIterations int

	ElapsedMS int64
	// PeakMemoryMB is the slot for a memory estimate (see SPEC_FULL.md,
	// OPEN QUESTIONS 3). No code in this package computes one, so it
	// stays 0.
	PeakMemoryMB int

	startedAt time.Time
}

func newStats() *Stats {
	return &Stats{startedAt: time.Now()}
}

func (s *Stats) finish() {
	s.ElapsedMS = time.Since(s.startedAt).Milliseconds()
}

func (s *Stats) recordTrail(n int) {
	if n > s.TrailHighWater {
		s.TrailHighWater = n
	}
}

func (s *Stats) recordQueue(n int) {
	if n > s.QueueHighWater {
		s.QueueHighWater = n
	}
}
