package bench

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats accumulates run-level counters across every task the Pool
// executes, a pared-down sibling of the teacher's ExecutionStats
// (internal/parallel/pool.go): kept are the counters a one-shot benchmark
// actually reports (submitted/completed/failed counts, duration history
// for percentile reporting); dropped are the scaling-event counters
// (ScaleUpEvents, PotentialDeadlocks, QueueFullEvents, GoroutineCount) the
// teacher's dynamic-scaling pool needed and this fixed-size pool does not.
type Stats struct {
	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64

	mu       sync.Mutex
	durations []time.Duration
}

func newStats() *Stats {
	return &Stats{durations: make([]time.Duration, 0, 64)}
}

func (s *Stats) recordTaskSubmitted() {
	atomic.AddInt64(&s.TasksSubmitted, 1)
}

func (s *Stats) recordTaskCompleted(d time.Duration) {
	atomic.AddInt64(&s.TasksCompleted, 1)
	s.mu.Lock()
	s.durations = append(s.durations, d)
	s.mu.Unlock()
}

func (s *Stats) recordTaskFailed() {
	atomic.AddInt64(&s.TasksFailed, 1)
}

// Durations returns a copy of every completed task's duration, in
// completion order.
func (s *Stats) Durations() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.durations))
	copy(out, s.durations)
	return out
}

// Total returns the summed duration of every completed task.
func (s *Stats) Total() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total time.Duration
	for _, d := range s.durations {
		total += d
	}
	return total
}
