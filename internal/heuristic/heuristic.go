// Package heuristic declares the FeasibilityHeuristic / ImprovementHeuristic
// capability sets (spec.md §4.11, design note "Heuristic polymorphism") and
// the read-only Context each is handed. Implementations never return a
// value from their search entry point — all output goes through ctx.Pool,
// per the same design note.
package heuristic

import (
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/config"
	"github.com/zrjer/GPH/internal/lpsolver"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/pool"
	"github.com/zrjer/GPH/internal/timelimit"
)

// Context bundles the read-only artifacts the Search hands every
// heuristic task: the MIP, the root LP result, the root row activities,
// the fractional integer list, a not-yet-cloned LP solver (heuristics
// call Clone() themselves, per spec.md §5's ownership rule), and the
// deadline. Heuristics write solutions into Pool, which they own
// exclusively for the duration of their run.
type Context struct {
	MIP            *mip.MIP
	RootLP         lpsolver.Result
	RootActivities []activity.Row
	Fractional     []int
	Solver         lpsolver.Solver
	Deadline       timelimit.TimeLimit
	Pool           *pool.Pool
}

// FeasibilityHeuristic produces a feasible integer solution from scratch.
type FeasibilityHeuristic interface {
	config.Setter
	Execute(ctx *Context)
	LastRuntime() time.Duration
}

// ImprovementHeuristic refines an incumbent solution.
type ImprovementHeuristic interface {
	config.Setter
	Improve(ctx *Context, incumbent pool.Entry)
	LastRuntime() time.Duration
}

// Timed is embedded by every concrete heuristic to implement LastRuntime
// without duplicating the stopwatch bookkeeping; Run wraps the
// heuristic's actual body and records its wall-clock duration.
type Timed struct {
	nanos atomic.Int64
}

func (t *Timed) Run(body func()) {
	start := time.Now()
	body()
	t.nanos.Store(int64(time.Since(start)))
}

func (t *Timed) LastRuntime() time.Duration {
	return time.Duration(t.nanos.Load())
}

// CloneSol copies a solution vector so heuristics never alias the MIP's
// or another heuristic's working storage.
func CloneSol(v *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	out.CopyVec(v)
	return out
}
