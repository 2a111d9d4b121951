// Package highsadapter wraps github.com/lanl/highs as the primary
// lpsolver.Solver backend, in the same style as the teacher's highs.go /
// branch_and_bound.go (cloneLp) / subgradient.go.
package highsadapter

import (
	"fmt"
	"slices"

	"github.com/lanl/highs"
	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/lpsolver"
)

// Adapter owns one *highs.Model and is not safe for concurrent use; each
// heuristic task clones its own Adapter via Clone().
type Adapter struct {
	model *highs.Model
}

// New builds an Adapter for a MIP's LP relaxation (or the MIP itself,
// when VarTypes marks integer columns — HiGHS treats that as a MIP solve
// and the caller is responsible for only doing that when it actually
// wants branch-and-bound rather than the relaxation).
func New(maximize bool, colCosts, colLower, colUpper, rowLower, rowUpper []float64, nz []highs.Nonzero, varTypes []highs.VariableType) *Adapter {
	return &Adapter{model: &highs.Model{
		Maximize:    maximize,
		ColCosts:    colCosts,
		ColLower:    colLower,
		ColUpper:    colUpper,
		RowLower:    rowLower,
		RowUpper:    rowUpper,
		ConstMatrix: nz,
		VarTypes:    varTypes,
	}}
}

func (a *Adapter) Solve() (lpsolver.Result, error) {
	return a.SolveWith(lpsolver.Dual)
}

func (a *Adapter) SolveWith(_ lpsolver.Algorithm) (lpsolver.Result, error) {
	sol, err := a.model.Solve()
	if err != nil {
		return lpsolver.Result{}, &lpsolver.Error{Backend: "highs", Err: err}
	}
	status := convertStatus(sol.Status)
	if status != lpsolver.Optimal {
		return lpsolver.Result{Status: status}, nil
	}
	return lpsolver.Result{
		Status:         status,
		Obj:            sol.Objective,
		PrimalSolution: mat.NewVecDense(len(sol.ColumnPrimal), sol.ColumnPrimal),
		DualSolution:   mat.NewVecDense(len(sol.RowDual), sol.RowDual),
	}, nil
}

func convertStatus(s highs.ModelStatus) lpsolver.Status {
	switch s {
	case highs.Optimal:
		return lpsolver.Optimal
	case highs.Infeasible:
		return lpsolver.Infeasible
	case highs.Unbounded:
		return lpsolver.Unbounded
	default:
		return lpsolver.Other
	}
}

// Clone deep-copies the model's slices, mirroring the teacher's cloneLp.
func (a *Adapter) Clone() lpsolver.Solver {
	return &Adapter{model: &highs.Model{
		Maximize:      a.model.Maximize,
		ColCosts:      slices.Clone(a.model.ColCosts),
		Offset:        a.model.Offset,
		ColLower:      slices.Clone(a.model.ColLower),
		ColUpper:      slices.Clone(a.model.ColUpper),
		RowLower:      slices.Clone(a.model.RowLower),
		RowUpper:      slices.Clone(a.model.RowUpper),
		ConstMatrix:   slices.Clone(a.model.ConstMatrix),
		HessianMatrix: slices.Clone(a.model.HessianMatrix),
		VarTypes:      slices.Clone(a.model.VarTypes),
	}}
}

func (a *Adapter) ChangeBounds(col int, lb, ub float64) {
	if col >= len(a.model.ColLower) || col >= len(a.model.ColUpper) {
		panic(fmt.Sprintf("highsadapter: ChangeBounds(%d): out of range", col))
	}
	a.model.ColLower[col] = lb
	a.model.ColUpper[col] = ub
}

func (a *Adapter) ChangeBoundsVec(lb, ub *mat.VecDense) {
	for c := 0; c < lb.Len(); c++ {
		a.model.ColLower[c] = lb.AtVec(c)
		a.model.ColUpper[c] = ub.AtVec(c)
	}
}
