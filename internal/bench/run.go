package bench

import (
	"context"
	"time"

	"github.com/gitrdm/solvecore/pkg/fdsolve"
)

// Job is one independent solver run to benchmark: Build constructs a fresh
// *fdsolve.Model (each job gets its own Model/Context, so nothing is
// shared across goroutines — see the package doc), and Solve runs it to
// completion.
type Job struct {
	Name  string
	Build func() *fdsolve.Model
	Solve func(*fdsolve.Model) (*fdsolve.Solution, error)
}

// Result is one Job's outcome.
type Result struct {
	Name     string
	Solution *fdsolve.Solution
	Stats    *fdsolve.Stats
	Err      error
	Elapsed  time.Duration
}

// RunAll runs every job through a fixed-size Pool of workers concurrency,
// returning one Result per job in the same order jobs was given (result
// slots are filled in from whichever goroutine completes them, but the
// slice itself is index-addressed so order is preserved regardless of
// completion order).
func RunAll(ctx context.Context, workers int, jobs []Job) []Result {
	pool := NewPool(workers)
	results := make([]Result, len(jobs))

	for i, job := range jobs {
		i, job := i, job
		_ = pool.Submit(ctx, func() {
			model := job.Build()
			start := time.Now()
			sol, err := job.Solve(model)
			results[i] = Result{
				Name:     job.Name,
				Solution: sol,
				Stats:    model.Stats(),
				Err:      err,
				Elapsed:  time.Since(start),
			}
		})
	}
	pool.Shutdown()
	return results
}
