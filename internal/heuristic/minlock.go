package heuristic

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	priorityqueue "gopkg.in/dnaeon/go-priorityqueue.v1"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/config"
	"github.com/zrjer/GPH/internal/lpsolver"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
)

// MinLockRounding is the repair-form heuristic of spec.md §4.8: it tries
// up to four fractional-variable orderings, rounding each column toward
// its fewer-locks side and repairing any row violations that rounding
// introduces by nudging other columns in that row.
type MinLockRounding struct {
	Timed
}

func NewMinLockRounding() *MinLockRounding { return &MinLockRounding{} }

func (h *MinLockRounding) Name() string { return "MinLockRounding" }

func (h *MinLockRounding) SetParam(name string, v config.Value) error {
	return nil // MinLockRounding has no tunable parameters.
}

func (h *MinLockRounding) Execute(ctx *Context) {
	h.Run(func() {
		for ordering := 0; ordering < 4; ordering++ {
			if ctx.Deadline.Expired() {
				return
			}
			order := buildOrdering(ctx.MIP, ctx.Fractional, ordering)
			h.tryOrdering(ctx, order)
		}
	})
}

// buildOrdering reorders a copy of fractional per spec.md §4.8's four
// orderings (0: asc min-lock, 1: asc max-lock, 2: asc col size, 3: desc
// col size).
func buildOrdering(m *mip.MIP, fractional []int, which int) []int {
	order := append([]int(nil), fractional...)
	key := func(c int) int {
		switch which {
		case 0:
			return minInt(m.DownLocks[c], m.UpLocks[c])
		case 1:
			return maxInt(m.DownLocks[c], m.UpLocks[c])
		case 2, 3:
			return m.ColSize(c)
		}
		return 0
	}
	sort.SliceStable(order, func(i, j int) bool {
		ki, kj := key(order[i]), key(order[j])
		if which == 3 {
			return ki > kj
		}
		return ki < kj
	})
	return order
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// tryOrdering runs one full attempt of the rounding+repair procedure
// starting fresh from the LP solution, and records a solution in
// ctx.Pool on success.
func (h *MinLockRounding) tryOrdering(ctx *Context, order []int) {
	m := ctx.MIP
	sol := CloneSol(ctx.RootLP.PrimalSolution)
	solAct := activity.SolActivities(m, sol)

	isViolated := make([]bool, m.NRows)
	var violatedList []int
	for r := 0; r < m.NRows; r++ {
		v := solAct.AtVec(r)
		if v < m.LHS.AtVec(r)-numerics.FeasTol || v > m.RHS.AtVec(r)+numerics.FeasTol {
			isViolated[r] = true
			violatedList = append(violatedList, r)
		}
	}

	ncontChanges := 0
	budget := 2 * m.Stats.NCont

	for _, c := range order {
		if numerics.IsIntegral(sol.AtVec(c)) {
			continue
		}
		old := sol.AtVec(c)
		var nv float64
		if m.DownLocks[c] < m.UpLocks[c] {
			nv = numerics.Floor(old)
		} else {
			nv = numerics.Ceil(old)
		}
		sol.SetVec(c, nv)
		activity.UpdateSolActivity(m, solAct, c, nv-old, &violatedList, isViolated)

		if !repairViolations(m, sol, solAct, isViolated, &violatedList, &ncontChanges, budget) {
			return // could not correct a violated row within budget; abort ordering
		}
	}

	for _, r := range violatedList {
		if isViolated[r] {
			return
		}
	}

	h.recordSuccess(ctx, sol)
}

// repairViolations pops violated rows (most-violated first, via a
// min-heap keyed on the negative violation magnitude, mirroring the
// teacher's greedy.go use of a priority queue to pick the best candidate
// each round) and nudges a column within each row back into bounds,
// capped at budget continuous-variable changes (spec.md §4.8 step 4, and
// the "repair cycling" design note §9).
func repairViolations(m *mip.MIP, sol *mat.VecDense, solAct *mat.VecDense, isViolated []bool, violatedList *[]int, ncontChanges *int, budget int) bool {
	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	for _, r := range *violatedList {
		if isViolated[r] {
			pq.Put(r, -violationMagnitude(m, solAct, r))
		}
	}

	for pq.Len() > 0 {
		item := pq.Get()
		r := item.Value
		if !isViolated[r] {
			continue
		}

		corrected := correctRow(m, sol, solAct, r, isViolated, violatedList, ncontChanges, budget)
		if !corrected {
			return false
		}
	}
	return true
}

func violationMagnitude(m *mip.MIP, solAct *mat.VecDense, r int) float64 {
	v := solAct.AtVec(r)
	if v < m.LHS.AtVec(r) {
		return m.LHS.AtVec(r) - v
	}
	if v > m.RHS.AtVec(r) {
		return v - m.RHS.AtVec(r)
	}
	return 0
}

// correctRow walks row r's columns trying to nudge one back within
// tolerance; it never moves a column already fixed at an integral
// value if that column is integer-constrained and currently integral.
func correctRow(m *mip.MIP, sol, solAct *mat.VecDense, r int, isViolated []bool, violatedList *[]int, ncontChanges *int, budget int) bool {
	cols, coeffs := m.A.Row(r)
	violatedLow := solAct.AtVec(r) < m.LHS.AtVec(r)-numerics.FeasTol

	for i, n := range cols {
		a := coeffs[i]
		if n < m.NInteger() && numerics.IsIntegral(sol.AtVec(n)) {
			continue
		}
		old := sol.AtVec(n)
		lb, ub := m.LB.AtVec(n), m.UB.AtVec(n)

		increase := (violatedLow && a > 0) || (!violatedLow && a < 0)
		var nv float64
		if n < m.NInteger() {
			if increase {
				nv = numerics.Ceil(old)
			} else {
				nv = numerics.Floor(old)
			}
		} else {
			// Continuous: move exactly the amount required to close
			// the gap, clipped to the column's own bounds.
			need := requiredDelta(m, solAct, r, a, violatedLow)
			if increase {
				nv = old + need
			} else {
				nv = old - need
			}
		}
		if nv < lb {
			nv = lb
		}
		if nv > ub {
			nv = ub
		}

		delta := nv - old
		if delta > 1e-6 || delta < -1e-6 {
			sol.SetVec(n, nv)
			activity.UpdateSolActivity(m, solAct, n, delta, violatedList, isViolated)
			if n >= m.NInteger() {
				*ncontChanges++
			}
			if !isViolated[r] {
				return true
			}
			if *ncontChanges > budget {
				return false
			}
		}
	}
	return !isViolated[r]
}

// requiredDelta estimates the |Δ| needed in column n (coefficient a) to
// bring row r exactly to its violated side's bound.
func requiredDelta(m *mip.MIP, solAct *mat.VecDense, r int, a float64, violatedLow bool) float64 {
	v := solAct.AtVec(r)
	var gap float64
	if violatedLow {
		gap = m.LHS.AtVec(r) - v
	} else {
		gap = v - m.RHS.AtVec(r)
	}
	if a == 0 {
		return 0
	}
	d := gap / a
	if d < 0 {
		d = -d
	}
	return d
}

// recordSuccess finishes a successful ordering: pure-integer MIPs cost
// their rounded solution directly (spec.md §8's boundary case — the LP
// solver must NOT be invoked here); mixed MIPs fix the integer columns
// and let the LP solver recover the continuous ones.
func (h *MinLockRounding) recordSuccess(ctx *Context, sol *mat.VecDense) {
	m := ctx.MIP
	if m.Stats.NCont == 0 {
		cost := mat.Dot(m.Obj, sol)
		ctx.Pool.Add(sol, cost)
		return
	}

	lp := ctx.Solver.Clone()
	for c := 0; c < m.NInteger(); c++ {
		lp.ChangeBounds(c, sol.AtVec(c), sol.AtVec(c))
	}
	res, err := lp.Solve()
	if err != nil {
		return // LP hard error inside a heuristic yields no solution, per spec.md §7.
	}
	if res.Status != lpsolver.Optimal {
		return
	}
	ctx.Pool.Add(res.PrimalSolution, res.Obj)
}
