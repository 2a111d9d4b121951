// Package golpadapter wraps github.com/draffensperger/golp (a Go binding
// over lp_solve) as a secondary lpsolver.Solver backend. The teacher's
// go.mod declares this dependency but never imports it; this adapter
// gives it the home the "LPSolver plurality" design note (spec.md §9)
// asks for — an alternate backend substitutable without touching any
// heuristic code.
package golpadapter

import (
	"fmt"

	"github.com/draffensperger/golp"
	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/lpsolver"
)

// Adapter owns one *golp.LP; like highsadapter, it is not safe for
// concurrent use and must be Clone()d per heuristic task.
type Adapter struct {
	lp       *golp.LP
	ncols    int
	obj      []float64
	lb, ub   []float64
	rows     [][]float64
	rowType  []int
	rowRHS   []float64
	integer  []bool
	minimize bool
}

// New builds an Adapter from dense row data; ncols/nrows match the
// caller's MIP dimensions. rowType entries are golp.LE/GE/EQ.
func New(minimize bool, obj, lb, ub []float64, rows [][]float64, rowType []int, rowRHS []float64, integer []bool) *Adapter {
	a := &Adapter{
		ncols: len(obj), obj: obj, lb: lb, ub: ub,
		rows: rows, rowType: rowType, rowRHS: rowRHS,
		integer: integer, minimize: minimize,
	}
	a.build()
	return a
}

func (a *Adapter) build() {
	a.lp = golp.NewLP(0, a.ncols)
	if a.minimize {
		a.lp.SetMinim()
	} else {
		a.lp.SetMaxim()
	}
	a.lp.SetObjFn(a.obj)
	for c := 0; c < a.ncols; c++ {
		a.lp.SetBounds(c, a.lb[c], a.ub[c])
		if a.integer[c] {
			a.lp.SetInt(c, true)
		}
	}
	for r, coeffs := range a.rows {
		a.lp.AddConstraint(coeffs, a.rowType[r], a.rowRHS[r])
	}
}

func (a *Adapter) Solve() (lpsolver.Result, error) {
	return a.SolveWith(lpsolver.Primal)
}

func (a *Adapter) SolveWith(_ lpsolver.Algorithm) (lpsolver.Result, error) {
	switch a.lp.Solve() {
	case golp.OPTIMAL:
		vars := a.lp.Variables()
		return lpsolver.Result{
			Status:         lpsolver.Optimal,
			Obj:            a.lp.Objective(),
			PrimalSolution: mat.NewVecDense(len(vars), vars),
		}, nil
	case golp.INFEASIBLE:
		return lpsolver.Result{Status: lpsolver.Infeasible}, nil
	case golp.UNBOUNDED:
		return lpsolver.Result{Status: lpsolver.Unbounded}, nil
	default:
		return lpsolver.Result{}, &lpsolver.Error{Backend: "golp", Err: fmt.Errorf("unexpected solve status")}
	}
}

// Clone rebuilds a fresh *golp.LP from the same problem data; lp_solve
// handles don't expose a deep-copy primitive, so rebuilding from the
// cached dense arrays is the adapter's equivalent of the highsadapter's
// slice-cloning Clone.
func (a *Adapter) Clone() lpsolver.Solver {
	clone := &Adapter{
		ncols: a.ncols, obj: append([]float64{}, a.obj...),
		lb: append([]float64{}, a.lb...), ub: append([]float64{}, a.ub...),
		rowType: append([]int{}, a.rowType...), rowRHS: append([]float64{}, a.rowRHS...),
		integer: append([]bool{}, a.integer...), minimize: a.minimize,
	}
	clone.rows = make([][]float64, len(a.rows))
	for i, r := range a.rows {
		clone.rows[i] = append([]float64{}, r...)
	}
	clone.build()
	return clone
}

func (a *Adapter) ChangeBounds(col int, lb, ub float64) {
	a.lb[col], a.ub[col] = lb, ub
	a.lp.SetBounds(col, lb, ub)
}

func (a *Adapter) ChangeBoundsVec(lb, ub *mat.VecDense) {
	for c := 0; c < a.ncols; c++ {
		a.ChangeBounds(c, lb.AtVec(c), ub.AtVec(c))
	}
}
