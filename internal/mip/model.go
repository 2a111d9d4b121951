// Package mip defines the immutable Mixed-Integer Program model consumed
// read-only by the rest of the engine.
package mip

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/numerics"
	"github.com/zrjer/GPH/internal/sparse"
)

// Stats summarizes a MIP's dimensions, reported by the Search for the
// end-of-run summary and useful for sizing heuristic working copies.
type Stats struct {
	NBin   int
	NInt   int
	NCont  int
	NCols  int
	NRows  int
	NNZMat int
}

// MIP is built once by the front-end (MPS parser or a test fixture) and
// never mutated afterwards. Heuristics copy lb/ub/solutions into their own
// working storage; the MIP itself is always safe to share by reference
// across concurrently running heuristics.
type MIP struct {
	NCols, NRows int

	LB, UB   *mat.VecDense
	LHS, RHS *mat.VecDense
	Obj      *mat.VecDense

	// Integer[c] is true iff column c must take an integer value.
	// Integer columns occupy indices [0, NInteger).
	Integer []bool

	A  *sparse.Matrix // row-major
	At *sparse.Matrix // column-major (transpose of A)

	ColNames []string
	RowNames []string

	DownLocks []int
	UpLocks   []int

	Stats Stats
}

// NInteger returns nbin+nint, the number of integer-constrained columns,
// which by construction occupy the prefix [0, NInteger) of every column
// indexed array.
func (m *MIP) NInteger() int {
	return m.Stats.NBin + m.Stats.NInt
}

// New builds an immutable MIP from its raw building blocks, deriving the
// transpose and the lock counts. It does not validate the MPS-level
// defaults (lb=0, ub=+inf) — callers (internal/mps or test fixtures) are
// expected to have already filled lb/ub/lhs/rhs with concrete values,
// using numerics.Infval for one-sided bounds/rows.
func New(ncols, nrows int, lb, ub, lhs, rhs, obj []float64, integer []bool, rows [][]sparse.Entry, colNames, rowNames []string, nbin, nint int) *MIP {
	a := sparse.NewMatrix(nrows, ncols, rows)
	at := a.Transpose()

	m := &MIP{
		NCols:    ncols,
		NRows:    nrows,
		LB:       mat.NewVecDense(ncols, lb),
		UB:       mat.NewVecDense(ncols, ub),
		LHS:      mat.NewVecDense(nrows, lhs),
		RHS:      mat.NewVecDense(nrows, rhs),
		Obj:      mat.NewVecDense(ncols, obj),
		Integer:  integer,
		A:        a,
		At:       at,
		ColNames: colNames,
		RowNames: rowNames,
		Stats: Stats{
			NBin:   nbin,
			NInt:   nint,
			NCont:  ncols - nbin - nint,
			NCols:  ncols,
			NRows:  nrows,
			NNZMat: a.NNZ(),
		},
	}
	m.DownLocks, m.UpLocks = computeLocks(m)
	return m
}

// computeLocks derives downLocks/upLocks[c] from A's column view and the
// finiteness of lhs/rhs, per spec.md §3:
//
//	downLocks[c] = |{ rows r : (lhs[r] > -inf and A[r,c] > 0) or (rhs[r] < +inf and A[r,c] < 0) }|
//	upLocks[c]   symmetric
func computeLocks(m *MIP) (down, up []int) {
	down = make([]int, m.NCols)
	up = make([]int, m.NCols)
	for c := 0; c < m.NCols; c++ {
		rows, coeffs := m.At.Row(c)
		for i, r := range rows {
			a := coeffs[i]
			lhsFinite := !numerics.IsMinusInf(m.LHS.AtVec(r))
			rhsFinite := !numerics.IsInf(m.RHS.AtVec(r))
			if a > 0 {
				if lhsFinite {
					down[c]++
				}
				if rhsFinite {
					up[c]++
				}
			} else if a < 0 {
				if rhsFinite {
					down[c]++
				}
				if lhsFinite {
					up[c]++
				}
			}
		}
	}
	return down, up
}

// ColSize returns the number of rows column c participates in, used by
// MinLockRounding's column-size orderings (spec.md §4.8, orderings 2/3).
func (m *MIP) ColSize(c int) int {
	rows, _ := m.At.Row(c)
	return len(rows)
}
