// Package propagate implements the single-column bound-change
// propagation kernel (spec.md §4.6): given that a column's bound just
// tightened, update affected row activities and push further forced
// tightenings to a fixpoint, or report infeasibility.
package propagate

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
)

// change is one pending bound tightening to apply and propagate.
type change struct {
	col       int
	oldlb, oldub float64
}

// Propagate mutates lb, ub and rows in place to reflect that column col
// moved from [oldlb, oldub] to its current bounds (already written into
// lb/ub by the caller before calling Propagate). It returns false as
// soon as any row's activity proves infeasible; rows then reflects a
// partially-propagated, not rolled back, state — callers that need to
// backtrack must work on copies, as the kernel keeps no undo log.
func Propagate(m *mip.MIP, lb, ub *mat.VecDense, rows []activity.Row, col int, oldlb, oldub float64) bool {
	queue := []change{{col, oldlb, oldub}}
	for len(queue) > 0 {
		ch := queue[0]
		queue = queue[1:]

		affected, coeffs := m.At.Row(ch.col)
		newlb, newub := lb.AtVec(ch.col), ub.AtVec(ch.col)

		for i, r := range affected {
			a := coeffs[i]
			updateRowForColumnChange(&rows[r], a, ch.oldlb, ch.oldub, newlb, newub)

			if rows[r].NInfMax == 0 && rows[r].Max < m.LHS.AtVec(r)-numerics.FeasTol {
				return false
			}
			if rows[r].NInfMin == 0 && rows[r].Min > m.RHS.AtVec(r)+numerics.FeasTol {
				return false
			}

			if !tightenRow(m, lb, ub, rows, r, &queue) {
				return false
			}
		}
	}
	return true
}

// updateRowForColumnChange removes column c's old contribution from row
// and re-adds its new contribution, keeping NInfMin/NInfMax consistent
// with which side (lb or ub) is currently infinite.
func updateRowForColumnChange(row *activity.Row, a, oldlb, oldub, newlb, newub float64) {
	removeContribution(row, a, oldlb, oldub)
	addContribution(row, a, newlb, newub)
}

func removeContribution(row *activity.Row, a, lb, ub float64) {
	if a > 0 {
		if numerics.IsMinusInf(lb) {
			row.NInfMin--
		} else {
			row.Min -= a * lb
		}
		if numerics.IsInf(ub) {
			row.NInfMax--
		} else {
			row.Max -= a * ub
		}
	} else if a < 0 {
		if numerics.IsInf(ub) {
			row.NInfMin--
		} else {
			row.Min -= a * ub
		}
		if numerics.IsMinusInf(lb) {
			row.NInfMax--
		} else {
			row.Max -= a * lb
		}
	}
}

func addContribution(row *activity.Row, a, lb, ub float64) {
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

// tightenRow scans row r's columns for forced bound tightenings implied
// by the row's current (fully finite) activity, applies them (respecting
// integrality and never loosening an existing bound), and enqueues each
// as a further change to propagate. Returns false if a tightening would
// cross lb above ub (empty domain).
//
// Tightening only fires when the row's activity on the relevant side has
// no infinite contributor at all (NInfMin==0 / NInfMax==0): excluding
// column c's own contribution from a min/max that already has an
// infinite contributor elsewhere can't be computed from the aggregate
// counts alone without tracking which column contributes it. That is a
// deliberate narrowing of spec.md §4.6's "standard activity-based implied
// bounds" — it costs some completeness on rows with several unbounded
// columns but keeps the kernel simple and never unsound.
func tightenRow(m *mip.MIP, lb, ub *mat.VecDense, rows []activity.Row, r int, queue *[]change) bool {
	cols, vals := m.A.Row(r)
	row := rows[r]
	rhs, lhs := m.RHS.AtVec(r), m.LHS.AtVec(r)

	for i, c := range cols {
		a := vals[i]
		curlb, curub := lb.AtVec(c), ub.AtVec(c)

		tighten := func(implied float64, isLower bool) bool {
			if isLower {
				if implied <= curlb+numerics.BoundTol {
					return true
				}
				if implied > curub+numerics.BoundTol {
					return false
				}
				oldlb := curlb
				lb.SetVec(c, implied)
				*queue = append(*queue, change{c, oldlb, curub})
			} else {
				if implied >= curub-numerics.BoundTol {
					return true
				}
				if implied < curlb-numerics.BoundTol {
					return false
				}
				oldub := curub
				ub.SetVec(c, implied)
				*queue = append(*queue, change{c, curlb, oldub})
			}
			return true
		}

		if a > 0 {
			if !numerics.IsInf(rhs) && row.NInfMin == 0 {
				minExclC := row.Min - a*curlb
				implied := (rhs - minExclC) / a
				if c < m.NInteger() {
					implied = numerics.Floor(implied)
				}
				if !tighten(implied, false) {
					return false
				}
			}
			if !numerics.IsMinusInf(lhs) && row.NInfMax == 0 {
				maxExclC := row.Max - a*curub
				implied := (lhs - maxExclC) / a
				if c < m.NInteger() {
					implied = numerics.Ceil(implied)
				}
				if !tighten(implied, true) {
					return false
				}
			}
		} else if a < 0 {
			if !numerics.IsInf(rhs) && row.NInfMin == 0 {
				minExclC := row.Min - a*curub
				implied := (rhs - minExclC) / a
				if c < m.NInteger() {
					implied = numerics.Ceil(implied)
				}
				if !tighten(implied, true) {
					return false
				}
			}
			if !numerics.IsMinusInf(lhs) && row.NInfMax == 0 {
				maxExclC := row.Max - a*curlb
				implied := (lhs - maxExclC) / a
				if c < m.NInteger() {
					implied = numerics.Floor(implied)
				}
				if !tighten(implied, false) {
					return false
				}
			}
		}
	}
	return true
}
