package heuristic

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/config"
	"github.com/zrjer/GPH/internal/lpsolver"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
	"github.com/zrjer/GPH/internal/propagate"
)

// BoundSolution is the three-trial feasibility heuristic of spec.md §4.9:
// it fixes every integer column to one of its bounds (or, in the
// "Optimistic" trial, to whichever bound the objective prefers),
// propagating each fix before moving to the next column, then hands the
// narrowed box to the LP solver to settle the continuous columns.
//
// The corrected objective computation sums objective[j]*bound[j] over the
// column j actually being priced, not the row index i — the original
// source's bug (spec.md §9) fed the row index into the objective
// coefficient lookup, which only ever accidentally matched on square
// instances.
type BoundSolution struct {
	Timed
}

func NewBoundSolution() *BoundSolution { return &BoundSolution{} }

func (h *BoundSolution) Name() string { return "BoundSolution" }

func (h *BoundSolution) SetParam(name string, v config.Value) error {
	return nil // BoundSolution has no tunable parameters.
}

type boundTrial int

const (
	trialUpper boundTrial = iota
	trialLower
	trialOptimistic
)

func (h *BoundSolution) Execute(ctx *Context) {
	h.Run(func() {
		trials := []boundTrial{trialUpper, trialLower, trialOptimistic}
		var wg sync.WaitGroup
		var mu sync.Mutex
		add := func(sol *mat.VecDense, cost float64) {
			mu.Lock()
			defer mu.Unlock()
			ctx.Pool.Add(sol, cost)
		}
		for _, t := range trials {
			wg.Add(1)
			go func(t boundTrial) {
				defer wg.Done()
				if ctx.Deadline.Expired() {
					return
				}
				h.runTrial(ctx, t, add)
			}(t)
		}
		wg.Wait()
	})
}

// runTrial fixes every integer column per t, deferring any column with an
// infinite bound on the side it would be fixed to until every other
// column has settled (spec.md §4.9's deferred second pass), then either
// prices the all-integer solution directly (ncont==0) or re-solves a
// cloned LP with the narrowed integer bounds to settle the continuous
// columns, matching BoundSolution.cpp's tryUBSolution/tryLBSolution/
// tryOptimisticSolution + the ncont>0 local-solve branch.
func (h *BoundSolution) runTrial(ctx *Context, t boundTrial, add func(*mat.VecDense, float64)) {
	m := ctx.MIP

	lb := CloneSol(m.LB)
	ub := CloneSol(m.UB)
	rows := append([]activity.Row(nil), ctx.RootActivities...)

	var deferred []int
	for c := 0; c < m.NInteger(); c++ {
		if lb.AtVec(c) == ub.AtVec(c) {
			continue
		}
		if !fixMainPass(m, lb, ub, rows, c, t, &deferred) {
			return
		}
	}

	for _, c := range deferred {
		if !fixDeferred(m, lb, ub, rows, c, t) {
			return
		}
	}

	if m.Stats.NCont == 0 {
		cost := mat.Dot(m.Obj, lb)
		add(CloneSol(lb), cost)
		return
	}

	local := ctx.Solver.Clone()
	local.ChangeBoundsVec(lb, ub)
	res, err := local.SolveWith(lpsolver.Dual)
	if err != nil || res.Status != lpsolver.Optimal {
		return
	}
	add(CloneSol(res.PrimalSolution), res.Obj)
}

// fixMainPass applies trial t's rule to column c, or appends c to
// deferred and leaves its bounds untouched when the bound it would fix
// to is infinite. Returns false on propagated infeasibility.
func fixMainPass(m *mip.MIP, lb, ub *mat.VecDense, rows []activity.Row, c int, t boundTrial, deferred *[]int) bool {
	switch t {
	case trialUpper:
		if numerics.IsMinusInf(lb.AtVec(c)) {
			*deferred = append(*deferred, c)
			return true
		}
		return fixTo(m, lb, ub, rows, c, lb.AtVec(c), lb.AtVec(c))
	case trialLower:
		if numerics.IsInf(ub.AtVec(c)) {
			*deferred = append(*deferred, c)
			return true
		}
		return fixTo(m, lb, ub, rows, c, ub.AtVec(c), ub.AtVec(c))
	default: // trialOptimistic
		obj := m.Obj.AtVec(c)
		fixLow := false
		switch {
		case obj > 0:
			fixLow = true
		case obj < 0:
			fixLow = false
		default:
			fixLow = m.UpLocks[c] > m.DownLocks[c]
		}
		if fixLow {
			if numerics.IsMinusInf(lb.AtVec(c)) {
				*deferred = append(*deferred, c)
				return true
			}
			return fixTo(m, lb, ub, rows, c, lb.AtVec(c), lb.AtVec(c))
		}
		if numerics.IsInf(ub.AtVec(c)) {
			*deferred = append(*deferred, c)
			return true
		}
		return fixTo(m, lb, ub, rows, c, ub.AtVec(c), ub.AtVec(c))
	}
}

// fixDeferred resolves a column whose chosen side was infinite in the
// main pass. If propagation from other columns has since tightened the
// opposite side to something finite, it snaps to that (now-finite) side
// instead; if both sides are still infinite, it fixes the column to 0.
func fixDeferred(m *mip.MIP, lb, ub *mat.VecDense, rows []activity.Row, c int, t boundTrial) bool {
	oldlb, oldub := lb.AtVec(c), ub.AtVec(c)

	switch t {
	case trialUpper:
		if !numerics.IsMinusInf(lb.AtVec(c)) {
			// lb became finite via propagation elsewhere; tighten ub down to it.
			return fixTo(m, lb, ub, rows, c, oldlb, lb.AtVec(c))
		}
		if numerics.IsInf(ub.AtVec(c)) {
			return fixTo(m, lb, ub, rows, c, 0, 0)
		}
		return fixTo(m, lb, ub, rows, c, ub.AtVec(c), oldub)
	case trialLower:
		if !numerics.IsInf(ub.AtVec(c)) {
			// ub became finite via propagation elsewhere; raise lb up to it.
			return fixTo(m, lb, ub, rows, c, ub.AtVec(c), oldub)
		}
		if numerics.IsMinusInf(lb.AtVec(c)) {
			return fixTo(m, lb, ub, rows, c, 0, 0)
		}
		return fixTo(m, lb, ub, rows, c, oldlb, lb.AtVec(c))
	default: // trialOptimistic
		lbinf := numerics.IsMinusInf(lb.AtVec(c))
		ubinf := numerics.IsInf(ub.AtVec(c))
		if !lbinf && !ubinf {
			return true // already settled by propagation; leave as-is.
		}
		if lbinf && ubinf {
			return fixTo(m, lb, ub, rows, c, 0, 0)
		}
		if lbinf {
			return fixTo(m, lb, ub, rows, c, ub.AtVec(c), oldub)
		}
		return fixTo(m, lb, ub, rows, c, oldlb, lb.AtVec(c))
	}
}

// fixTo sets column c's bounds to [newlb, newub] and propagates the
// change, reporting false on infeasibility.
func fixTo(m *mip.MIP, lb, ub *mat.VecDense, rows []activity.Row, c int, newlb, newub float64) bool {
	oldlb, oldub := lb.AtVec(c), ub.AtVec(c)
	lb.SetVec(c, newlb)
	ub.SetVec(c, newub)
	return propagate.Propagate(m, lb, ub, rows, c, oldlb, oldub)
}
