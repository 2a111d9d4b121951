package activity

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
)

// HasZeroLockRounding reports whether every fractional integer column
// has a zero-lock rounding direction available — zero up-locks (safe to
// round up) or zero down-locks (safe to round down). When true,
// ZeroLockRound is guaranteed feasible (spec.md §4.7).
func HasZeroLockRounding(m *mip.MIP, sol *mat.VecDense, fractional []int) bool {
	for _, c := range fractional {
		if m.UpLocks[c] != 0 && m.DownLocks[c] != 0 {
			return false
		}
	}
	return true
}

// ZeroLockRound rounds every fractional column in its zero-lock
// direction (preferring up when both locks happen to be zero) and
// returns the resulting objective delta. Callers must have already
// confirmed HasZeroLockRounding.
func ZeroLockRound(m *mip.MIP, sol *mat.VecDense, fractional []int) float64 {
	var delta float64
	for _, c := range fractional {
		old := sol.AtVec(c)
		var nv float64
		if m.UpLocks[c] == 0 {
			nv = numerics.Ceil(old)
		} else {
			nv = numerics.Floor(old)
		}
		sol.SetVec(c, nv)
		delta += m.Obj.AtVec(c) * (nv - old)
	}
	return delta
}

// MinLockRoundTrivial rounds every fractional integer column toward its
// side with fewer locks (ties go down) and, if the result is feasible,
// returns it with its objective cost. It is the cheap, non-repairing
// form used by the Search to round the root LP (spec.md §4.7); the
// repairing form lives in internal/heuristic as the MinLockRounding
// heuristic.
func MinLockRoundTrivial(m *mip.MIP, lpSol *mat.VecDense, fractional []int) (sol *mat.VecDense, cost float64, ok bool) {
	sol = mat.NewVecDense(m.NCols, nil)
	sol.CopyVec(lpSol)
	for _, c := range fractional {
		old := sol.AtVec(c)
		if m.DownLocks[c] <= m.UpLocks[c] {
			sol.SetVec(c, numerics.Floor(old))
		} else {
			sol.SetVec(c, numerics.Ceil(old))
		}
	}
	if !CheckFeasibility(m, sol, numerics.BoundTol, numerics.FeasTol, false) {
		return nil, 0, false
	}
	cost = mat.Dot(m.Obj, sol)
	return sol, cost, true
}
