package heuristic

import (
	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/config"
	"github.com/zrjer/GPH/internal/numerics"
	"github.com/zrjer/GPH/internal/pool"
)

// LocalSearch is the ImprovementHeuristic of spec.md §4.11's improvement
// stage: deterministic first-improvement coordinate descent over the
// incumbent's integer columns, in the style of a 2-opt-family local
// search — scan the integer columns in order, accept each single-unit
// move that strictly lowers the objective while staying row- and
// bound-feasible as the scan reaches it, and repeat passes until a full
// pass finds nothing, MaxPasses passes (default 10) have run, or the
// deadline expires.
type LocalSearch struct {
	Timed
	maxPasses int64
}

func NewLocalSearch() *LocalSearch { return &LocalSearch{} }

func (h *LocalSearch) Name() string { return "LocalSearch" }

func (h *LocalSearch) SetParam(name string, v config.Value) error {
	if name != "MaxPasses" {
		return nil
	}
	if v.Kind != config.Int64 {
		return &config.TypeError{Heuristic: h.Name(), Param: name, Got: v.Kind, Want: config.Int64}
	}
	h.maxPasses = v.Int64V
	return nil
}

func (h *LocalSearch) Improve(ctx *Context, incumbent pool.Entry) {
	h.Run(func() {
		m := ctx.MIP
		sol := CloneSol(incumbent.Solution)
		cost := incumbent.Cost

		maxPasses := h.maxPasses
		if maxPasses <= 0 {
			maxPasses = 10
		}

		for pass := int64(0); pass < maxPasses; pass++ {
			if ctx.Deadline.Expired() {
				break
			}
			improved := false
			for c := 0; c < m.NInteger(); c++ {
				obj := m.Obj.AtVec(c)
				var step float64
				switch {
				case obj > 0:
					step = -1.0 // decreasing an integer with positive cost can only help
				case obj < 0:
					step = 1.0
				default:
					continue // zero objective coefficient: no move can improve cost here
				}

				old := sol.AtVec(c)
				nv := old + step
				if nv < m.LB.AtVec(c) || nv > m.UB.AtVec(c) {
					continue
				}
				sol.SetVec(c, nv)
				if !activity.CheckFeasibility(m, sol, numerics.BoundTol, numerics.FeasTol, false) {
					sol.SetVec(c, old)
					continue
				}
				cost += obj * step
				improved = true
			}
			if ctx.Deadline.Expired() {
				break
			}
			if !improved {
				break
			}
		}

		if cost < incumbent.Cost-numerics.FeasTol {
			ctx.Pool.Add(sol, cost)
		}
	})
}
