// Package search implements the Search orchestrator (spec.md §4.11): it
// solves the root LP relaxation, seeds the master pool with trivial
// min-lock rounding, fans feasibility heuristics out over goroutines (the
// same channel fan-out/fan-in pattern as the teacher's
// branch_and_bound.go), picks the best incumbent, fans improvement
// heuristics out over it, and reports a final summary.
package search

import (
	"fmt"
	"time"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/config"
	"github.com/zrjer/GPH/internal/heuristic"
	"github.com/zrjer/GPH/internal/lpsolver"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/pool"
	"github.com/zrjer/GPH/internal/timelimit"
)

// Options configures one Run.
type Options struct {
	TimeLimitSeconds float64
	PoolLimit        int
	Params           []config.Param
	Warn             func(string) // receives config.Apply's unknown-heuristic warnings; nil discards them
}

// HeuristicReport is one line of the end-of-run summary.
type HeuristicReport struct {
	Name    string
	Runtime time.Duration
	Found   bool
	Cost    float64
}

// Result is the outcome of one Run.
type Result struct {
	Best    pool.Entry
	Found   bool
	Reports []HeuristicReport
}

// Run drives one end-to-end search over m using solver as the root LP and
// per-heuristic backend. feas and improv are dispatched in the order
// spec.md §4.11 describes: all feasibility heuristics in parallel, then
// all improvement heuristics in parallel over the best incumbent found so
// far.
func Run(m *mip.MIP, solver lpsolver.Solver, feas []heuristic.FeasibilityHeuristic, improv []heuristic.ImprovementHeuristic, opts Options) (Result, error) {
	setters := make([]config.Setter, 0, len(feas)+len(improv))
	for _, h := range feas {
		setters = append(setters, h)
	}
	for _, h := range improv {
		setters = append(setters, h)
	}
	if err := config.Apply(opts.Params, setters, opts.Warn); err != nil {
		return Result{}, err
	}

	deadline := timelimit.New(opts.TimeLimitSeconds)

	rootRes, err := solver.SolveWith(lpsolver.Dual)
	if err != nil {
		return Result{}, err
	}
	if rootRes.Status != lpsolver.Optimal {
		return Result{}, fmt.Errorf("search: root LP relaxation is %s, not OPTIMAL", rootRes.Status)
	}

	rootActivities := activity.Compute(m)
	fractional := activity.Fractional(rootRes.PrimalSolution, m.NInteger())

	masterPool := pool.New(opts.PoolLimit)
	if sol, cost, ok := activity.MinLockRoundTrivial(m, rootRes.PrimalSolution, fractional); ok {
		masterPool.Add(sol, cost)
	}

	newCtx := func() *heuristic.Context {
		return &heuristic.Context{
			MIP:            m,
			RootLP:         rootRes,
			RootActivities: rootActivities,
			Fractional:     fractional,
			Solver:         solver,
			Deadline:       deadline,
			Pool:           pool.New(opts.PoolLimit),
		}
	}

	var reports []HeuristicReport

	type dispatched struct {
		name    string
		runtime time.Duration
		pool    *pool.Pool
	}

	if len(feas) > 0 {
		resultsCh := make(chan dispatched, len(feas))
		for _, h := range feas {
			go func(h heuristic.FeasibilityHeuristic) {
				ctx := newCtx()
				h.Execute(ctx)
				resultsCh <- dispatched{name: h.Name(), runtime: h.LastRuntime(), pool: ctx.Pool}
			}(h)
		}
		for range feas {
			r := <-resultsCh
			best, found := r.pool.Best()
			reports = append(reports, HeuristicReport{Name: r.name, Runtime: r.runtime, Found: found, Cost: best.Cost})
			if found {
				masterPool.Add(best.Solution, best.Cost)
			}
		}
	}

	if incumbent, ok := masterPool.Best(); ok && len(improv) > 0 {
		resultsCh := make(chan dispatched, len(improv))
		for _, h := range improv {
			go func(h heuristic.ImprovementHeuristic) {
				ctx := newCtx()
				h.Improve(ctx, incumbent)
				resultsCh <- dispatched{name: h.Name(), runtime: h.LastRuntime(), pool: ctx.Pool}
			}(h)
		}
		for range improv {
			r := <-resultsCh
			best, found := r.pool.Best()
			reports = append(reports, HeuristicReport{Name: r.name, Runtime: r.runtime, Found: found, Cost: best.Cost})
			if found {
				masterPool.Add(best.Solution, best.Cost)
			}
		}
	}

	best, found := masterPool.Best()
	return Result{Best: best, Found: found, Reports: reports}, nil
}
