package heuristic

import (
	"gonum.org/v1/gonum/mat"
	priorityqueue "gopkg.in/dnaeon/go-priorityqueue.v1"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/config"
	"github.com/zrjer/GPH/internal/lpsolver"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
)

// SelectRule picks which fractional column to tighten next in a dive and
// which side to tighten it from, templated per spec.md §4.10's
// "DivingHeuristic is parameterized by a variable-selection rule" design
// note: the rule returns `(varToFix, direction)`, `direction = +1` meaning
// "raise the lower bound to ceil(lp[varToFix])", `-1` meaning "lower the
// upper bound to floor(lp[varToFix])".
type SelectRule func(m *mip.MIP, sol *mat.VecDense, fractional []int) (col, direction int)

// DivingHeuristic repeatedly tightens one bound of the fractional column
// its rule selects (lb to ceil or ub to floor of the LP value, per the
// rule's direction), re-solves the LP relaxation with that bound in
// place, and repeats until the relaxation is all-integer, infeasible, the
// deadline expires, or the dive's depth budget runs out.
type DivingHeuristic struct {
	Timed
	name     string
	rule     SelectRule
	maxDepth int64 // 0 means "no explicit cap beyond NInteger()"
}

func newDiving(name string, rule SelectRule) *DivingHeuristic {
	return &DivingHeuristic{name: name, rule: rule}
}

// NewCoefficientDiving builds the concrete CoefficientDiving rule of
// spec.md §4.10: over fractional integer columns, pick the one minimizing
// min(downLocks, upLocks) among columns where that minimum is nonzero —
// the column most committed to one rounding direction, excluding columns
// that are free to round either way at no cost. direction is -1
// (tighten ub) if downLocks <= upLocks, else +1 (tighten lb).
func NewCoefficientDiving() *DivingHeuristic {
	return newDiving("CoefficientDiving", coefficientDivingSelect)
}

// coefficientDivingSelect ranks every candidate column by min(downLocks,
// upLocks) in a min-heap, the same ordered-work-list pattern minlock.go
// uses for violated rows. If every fractional column has a zero-lock
// side (none qualifies), it falls back to the first fractional column's
// own zero-lock direction so the dive still makes progress.
func coefficientDivingSelect(m *mip.MIP, sol *mat.VecDense, fractional []int) (int, int) {
	pq := priorityqueue.New[int, int64](priorityqueue.MinHeap)
	for _, c := range fractional {
		lock := m.DownLocks[c]
		if m.UpLocks[c] < lock {
			lock = m.UpLocks[c]
		}
		if lock == 0 {
			continue
		}
		pq.Put(c, int64(lock))
	}

	col := fractional[0]
	if pq.Len() > 0 {
		col = pq.Get().Value
	}
	if m.DownLocks[col] <= m.UpLocks[col] {
		return col, -1
	}
	return col, 1
}

func (h *DivingHeuristic) Name() string { return h.name }

func (h *DivingHeuristic) SetParam(name string, v config.Value) error {
	if name != "MaxDepth" {
		return nil
	}
	if v.Kind != config.Int64 {
		return &config.TypeError{Heuristic: h.name, Param: name, Got: v.Kind, Want: config.Int64}
	}
	h.maxDepth = v.Int64V
	return nil
}

func (h *DivingHeuristic) Execute(ctx *Context) {
	h.Run(func() {
		m := ctx.MIP
		lp := ctx.Solver.Clone()
		sol := CloneSol(ctx.RootLP.PrimalSolution)
		lb := CloneSol(m.LB)
		ub := CloneSol(m.UB)
		fractional := append([]int(nil), ctx.Fractional...)

		maxDepth := h.maxDepth
		if maxDepth <= 0 {
			maxDepth = int64(m.NInteger())
		}

		var depth int64
		for len(fractional) > 0 {
			if ctx.Deadline.Expired() || depth >= maxDepth {
				return
			}
			c, direction := h.rule(m, sol, fractional)
			if direction > 0 {
				lb.SetVec(c, numerics.Ceil(sol.AtVec(c)))
			} else {
				ub.SetVec(c, numerics.Floor(sol.AtVec(c)))
			}
			lp.ChangeBounds(c, lb.AtVec(c), ub.AtVec(c))

			res, err := lp.Solve()
			if err != nil || res.Status != lpsolver.Optimal {
				return
			}
			sol = CloneSol(res.PrimalSolution)
			fractional = activity.Fractional(sol, m.NInteger())
			depth++
		}

		cost := mat.Dot(m.Obj, sol)
		ctx.Pool.Add(sol, cost)
	})
}
