// Command fdsolve-bench runs a fixed battery of worked fdsolve models
// concurrently through internal/bench's worker pool and reports
// per-model timing and solver statistics. Grounded on the teacher's
// cmd/example (gitrdm-gokando/cmd/example/main.go), which is likewise a
// thin flag-parsing-and-report wrapper around the library; generalized
// from running one relational query to fanning a fixed job list out
// across internal/bench.Pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gitrdm/solvecore/internal/bench"
	"github.com/gitrdm/solvecore/pkg/fdsolve"
)

func main() {
	workers := flag.Int("workers", 4, "number of concurrent solver goroutines")
	n := flag.Int("n-queens", 8, "board size for the n-queens job")
	flag.Parse()

	jobs := []bench.Job{
		nQueensJob(*n),
		sendMoreMoneyJob(),
		floatLinearJob(),
	}

	ctx := context.Background()
	start := time.Now()
	results := bench.RunAll(ctx, *workers, jobs)
	elapsed := time.Since(start)

	failed := false
	for _, r := range results {
		fmt.Printf("%-20s elapsed=%-12s nodes=%-8d propagations=%-8d ",
			r.Name, r.Elapsed, r.Stats.Nodes, r.Stats.Propagations)
		if r.Err != nil {
			fmt.Printf("error=%v\n", r.Err)
			failed = true
			continue
		}
		fmt.Printf("ok\n")
	}
	fmt.Printf("total wall-clock: %s (workers=%d)\n", elapsed, *workers)
	if failed {
		os.Exit(1)
	}
}

func nQueensJob(n int) bench.Job {
	return bench.Job{
		Name: fmt.Sprintf("n-queens-%d", n),
		Build: func() *fdsolve.Model {
			m := fdsolve.NewModel()
			cols := m.Ints(n, 0, int64(n-1))
			m.AllDifferent(cols)
			diag1 := make([]fdsolve.VarId, n)
			diag2 := make([]fdsolve.VarId, n)
			for i := 0; i < n; i++ {
				d1 := m.Int(int64(-n), int64(n))
				d2 := m.Int(0, int64(2*n-2))
				// d1 = cols[i] - i, d2 = cols[i] + i
				m.Linear([]float64{1, -1}, []fdsolve.VarId{cols[i], d1}, fdsolve.RelEQ, float64(i))
				m.Linear([]float64{1, -1}, []fdsolve.VarId{cols[i], d2}, fdsolve.RelEQ, float64(-i))
				diag1[i], diag2[i] = d1, d2
			}
			m.AllDifferent(diag1)
			m.AllDifferent(diag2)
			return m
		},
		Solve: func(m *fdsolve.Model) (*fdsolve.Solution, error) { return m.Solve() },
	}
}

func sendMoreMoneyJob() bench.Job {
	return bench.Job{
		Name: "send-more-money",
		Build: func() *fdsolve.Model {
			m := fdsolve.NewModel()
			s, e, n, d := m.Int(1, 9), m.Int(0, 9), m.Int(0, 9), m.Int(0, 9)
			mo, o, r, y := m.Int(1, 9), m.Int(0, 9), m.Int(0, 9), m.Int(0, 9)
			m.AllDifferent([]fdsolve.VarId{s, e, n, d, mo, o, r, y})

			// 1000*S + 100*E + 10*N + D + 1000*M + 100*O + 10*R + E
			//   - 10000*M - 1000*O - 100*N - 10*E - Y == 0
			m.Linear(
				[]float64{1000, 100, 10, 1, 1000, 100, 10, 1, -10000, -1000, -100, -10, -1},
				[]fdsolve.VarId{s, e, n, d, mo, o, r, e, mo, o, n, e, y},
				fdsolve.RelEQ, 0,
			)
			return m
		},
		Solve: func(m *fdsolve.Model) (*fdsolve.Solution, error) { return m.Solve() },
	}
}

func floatLinearJob() bench.Job {
	return bench.Job{
		Name: "float-linear-max",
		Build: func() *fdsolve.Model {
			m := fdsolve.NewModel()
			x := m.Float(0, 40)
			y := m.Float(0, 40)
			m.Linear([]float64{1, 1}, []fdsolve.VarId{x, y}, fdsolve.RelLE, 40)
			m.Linear([]float64{2, 1}, []fdsolve.VarId{x, y}, fdsolve.RelLE, 60)
			return m
		},
		Solve: func(m *fdsolve.Model) (*fdsolve.Solution, error) {
			return m.Maximize(fdsolve.VarId(0))
		},
	}
}
