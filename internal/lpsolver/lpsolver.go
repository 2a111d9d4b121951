// Package lpsolver declares the abstract LP solver capability set the
// core drives (spec.md §6): solve, solve(algorithm), clone, and
// changeBounds on a single column or the whole vector. Concrete backends
// live in the highsadapter and golpadapter subpackages, keeping the
// heuristics themselves backend-agnostic ("LPSolver plurality", spec.md §9).
package lpsolver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Status mirrors the four outcomes an LP relaxation can report.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	Other
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	default:
		return "OTHER"
	}
}

// Algorithm selects which simplex variant to run.
type Algorithm int

const (
	Primal Algorithm = iota
	Dual
)

// Result is the outcome of one LP solve.
type Result struct {
	Status         Status
	Obj            float64
	PrimalSolution *mat.VecDense
	DualSolution   *mat.VecDense
}

// Solver is the capability set every heuristic is handed a clone of.
// Implementations are not required to be safe for concurrent use by
// multiple goroutines on the *same* instance — each heuristic task calls
// Clone() once and owns the clone exclusively (spec.md §5).
type Solver interface {
	Solve() (Result, error)
	SolveWith(Algorithm) (Result, error)
	Clone() Solver
	ChangeBounds(col int, lb, ub float64)
	ChangeBoundsVec(lb, ub *mat.VecDense)
}

// Error wraps a backend failure as the SolverError kind of spec.md §7.
// It bubbles out of a heuristic's LP calls; the Search only aborts the
// whole run when this happens at the root-LP stage, per spec.md §7's
// propagation policy — everywhere else it just means that heuristic
// yields no solution.
type Error struct {
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lpsolver(%s): %v", e.Backend, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
