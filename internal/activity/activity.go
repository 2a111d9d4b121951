// Package activity computes row activities, solution activities,
// fractional-variable enumeration, feasibility checks and the zero-lock /
// trivial min-lock rounding primitives (spec.md §4.2-4.4, §4.7).
package activity

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
)

// Row is the activity record of one constraint row: the finite part of
// the row's min/max achievable value over the current box, plus a count
// of the infinite contributions excluded from that finite part.
type Row struct {
	Min, Max float64
	NInfMin  int
	NInfMax  int
}

// Compute builds the activity of every row of m from its current lb/ub.
func Compute(m *mip.MIP) []Row {
	rows := make([]Row, m.NRows)
	for r := 0; r < m.NRows; r++ {
		idx, coeffs := m.A.Row(r)
		var row Row
		for i, c := range idx {
			a := coeffs[i]
			addContribution(&row, a, m.LB.AtVec(c), m.UB.AtVec(c))
		}
		rows[r] = row
	}
	return rows
}

// addContribution folds column c's coefficient a into row's running
// min/max given its current bounds, per spec.md §4.2: a>0 contributes
// a*lb to min and a*ub to max; a<0 is the lb/ub-swapped mirror.
func addContribution(row *Row, a, lb, ub float64) {
	if a > 0 {
		if numerics.IsMinusInf(lb) {
			row.NInfMin++
		} else {
			row.Min += a * lb
		}
		if numerics.IsInf(ub) {
			row.NInfMax++
		} else {
			row.Max += a * ub
		}
	} else if a < 0 {
		if numerics.IsInf(ub) {
			row.NInfMin++
		} else {
			row.Min += a * ub
		}
		if numerics.IsMinusInf(lb) {
			row.NInfMax++
		} else {
			row.Max += a * lb
		}
	}
}

// SolActivities computes A·sol, one entry per row.
func SolActivities(m *mip.MIP, sol *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(m.NRows, nil)
	for r := 0; r < m.NRows; r++ {
		idx, coeffs := m.A.Row(r)
		var v float64
		for i, c := range idx {
			v += coeffs[i] * sol.AtVec(c)
		}
		out.SetVec(r, v)
	}
	return out
}

// Fractional returns the indices c in [0, ninteger) with sol[c] not
// integral, in ascending order (spec.md §4.3).
func Fractional(sol *mat.VecDense, ninteger int) []int {
	var out []int
	for c := 0; c < ninteger; c++ {
		if !numerics.IsIntegral(sol.AtVec(c)) {
			out = append(out, c)
		}
	}
	return out
}

// CheckFeasibility verifies bounds (with boundtol) and, unless lpMode is
// set, integrality of the integer-constrained prefix, then row sides
// (with constol). It reports true iff GetNViolated finds no violation.
// Spec.md §4.4.
func CheckFeasibility(m *mip.MIP, sol *mat.VecDense, boundtol, constol float64, lpMode bool) bool {
	return GetNViolated(m, sol, boundtol, constol, lpMode) == 0
}

// GetNViolated counts bound, integrality and row-side violations.
func GetNViolated(m *mip.MIP, sol *mat.VecDense, boundtol, constol float64, lpMode bool) int {
	n := 0
	for c := 0; c < m.NCols; c++ {
		v := sol.AtVec(c)
		if v < m.LB.AtVec(c)-boundtol || v > m.UB.AtVec(c)+boundtol {
			n++
		}
	}
	if !lpMode {
		for c := 0; c < m.NInteger(); c++ {
			if !isIntegralTol(sol.AtVec(c), boundtol) {
				n++
			}
		}
	}
	act := SolActivities(m, sol)
	for r := 0; r < m.NRows; r++ {
		v := act.AtVec(r)
		if v < m.LHS.AtVec(r)-constol || v > m.RHS.AtVec(r)+constol {
			n++
		}
	}
	return n
}

func isIntegralTol(x, tol float64) bool {
	d := x - math.Round(x)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// UpdateSolActivity applies a change of delta in sol[c] to act in place,
// updates the violated-row bookkeeping, and returns the net change in
// violation count (spec.md §4.5). violated is append-only for this one
// call; isViolated is the authoritative membership bitset and must be
// re-checked (and the row re-pushed) every time it flips false->true.
func UpdateSolActivity(m *mip.MIP, act *mat.VecDense, col int, delta float64, violated *[]int, isViolated []bool) int {
	if delta == 0 {
		return 0
	}
	net := 0
	idx, coeffs := m.At.Row(col)
	for i, r := range idx {
		a := coeffs[i]
		newVal := act.AtVec(r) + a*delta
		act.SetVec(r, newVal)

		nowViolated := newVal < m.LHS.AtVec(r)-numerics.FeasTol || newVal > m.RHS.AtVec(r)+numerics.FeasTol
		if nowViolated && !isViolated[r] {
			isViolated[r] = true
			*violated = append(*violated, r)
			net++
		} else if !nowViolated && isViolated[r] {
			isViolated[r] = false
			net--
		}
	}
	return net
}
