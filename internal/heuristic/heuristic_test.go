package heuristic

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/activity"
	"github.com/zrjer/GPH/internal/lpsolver"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
	"github.com/zrjer/GPH/internal/pool"
	"github.com/zrjer/GPH/internal/sparse"
	"github.com/zrjer/GPH/internal/timelimit"
)

// twoBinaryCover builds: min x+y s.t. x+y >= 1, x,y in {0,1}; root LP
// relaxation sits at (0.5, 0.5).
func twoBinaryCover() *mip.MIP {
	inf := numerics.Infval
	rows := [][]sparse.Entry{
		{{Col: 0, Value: 1}, {Col: 1, Value: 1}},
	}
	return mip.New(
		2, 1,
		[]float64{0, 0}, []float64{1, 1},
		[]float64{1}, []float64{inf},
		[]float64{1, 1},
		[]bool{true, true},
		rows,
		[]string{"x", "y"}, []string{"c0"},
		2, 0,
	)
}

// fakeSolver is a minimal lpsolver.Solver double: fixed columns (lb==ub)
// report that fixed value, free columns report their recorded relaxation
// base value, which is enough to drive the heuristics' Clone/ChangeBounds
// interactions without a real simplex.
type fakeSolver struct {
	ncols  int
	lb, ub []float64
	base   []float64
}

func newFakeSolver(base, lb, ub []float64) *fakeSolver {
	return &fakeSolver{
		ncols: len(base),
		lb:    append([]float64(nil), lb...),
		ub:    append([]float64(nil), ub...),
		base:  base,
	}
}

func (f *fakeSolver) Solve() (lpsolver.Result, error) { return f.SolveWith(lpsolver.Primal) }

func (f *fakeSolver) SolveWith(lpsolver.Algorithm) (lpsolver.Result, error) {
	sol := mat.NewVecDense(f.ncols, nil)
	for c := 0; c < f.ncols; c++ {
		if f.lb[c] == f.ub[c] {
			sol.SetVec(c, f.lb[c])
		} else {
			sol.SetVec(c, f.base[c])
		}
	}
	return lpsolver.Result{Status: lpsolver.Optimal, PrimalSolution: sol}, nil
}

func (f *fakeSolver) Clone() lpsolver.Solver {
	return &fakeSolver{ncols: f.ncols, lb: append([]float64(nil), f.lb...), ub: append([]float64(nil), f.ub...), base: f.base}
}

func (f *fakeSolver) ChangeBounds(col int, lb, ub float64) {
	f.lb[col], f.ub[col] = lb, ub
}

func (f *fakeSolver) ChangeBoundsVec(lb, ub *mat.VecDense) {
	for c := 0; c < f.ncols; c++ {
		f.lb[c], f.ub[c] = lb.AtVec(c), ub.AtVec(c)
	}
}

func newContext(m *mip.MIP, rootSol []float64) *Context {
	sol := mat.NewVecDense(len(rootSol), rootSol)
	return &Context{
		MIP:            m,
		RootLP:         lpsolver.Result{Status: lpsolver.Optimal, PrimalSolution: sol},
		RootActivities: activity.Compute(m),
		Fractional:     activity.Fractional(sol, m.NInteger()),
		Solver:         newFakeSolver(rootSol, m.LB.RawVector().Data, m.UB.RawVector().Data),
		Deadline:       timelimit.New(30),
		Pool:           pool.New(0),
	}
}

func TestMinLockRoundingPureIntegerFeasible(t *testing.T) {
	m := twoBinaryCover()
	ctx := newContext(m, []float64{0.5, 0.5})

	h := NewMinLockRounding()
	h.Execute(ctx)

	best, ok := ctx.Pool.Best()
	if !ok {
		t.Fatal("expected at least one pool entry")
	}
	// downLocks(1) > upLocks(0) for both columns, so rounding goes up;
	// (1,1) is feasible (x+y>=1) with cost 2.
	if best.Cost != 2 {
		t.Errorf("best cost = %v, want 2", best.Cost)
	}
	if h.LastRuntime() <= 0 {
		t.Error("expected LastRuntime to be recorded")
	}
}

func TestBoundSolutionFindsFeasibleTrial(t *testing.T) {
	m := twoBinaryCover()
	ctx := newContext(m, []float64{0.5, 0.5})

	h := NewBoundSolution()
	h.Execute(ctx)

	best, ok := ctx.Pool.Best()
	if !ok {
		t.Fatal("expected at least one feasible trial (lower-bound trial gives (1,1))")
	}
	if best.Cost > 2 {
		t.Errorf("best cost = %v, want <= 2", best.Cost)
	}
}

func TestCoefficientDivingReachesIntegerSolution(t *testing.T) {
	m := twoBinaryCover()
	ctx := newContext(m, []float64{0.5, 0.5})

	h := NewCoefficientDiving()
	h.Execute(ctx)

	best, ok := ctx.Pool.Best()
	if !ok {
		t.Fatal("expected diving to reach a feasible all-integer solution")
	}
	if best.Solution.AtVec(0)+best.Solution.AtVec(1) < 1-numerics.FeasTol {
		t.Errorf("solution %v violates x+y>=1", best.Solution.RawVector().Data)
	}
}

func TestLocalSearchImprovesIncumbent(t *testing.T) {
	m := twoBinaryCover()
	ctx := newContext(m, []float64{0.5, 0.5})

	incumbent := pool.Entry{Solution: mat.NewVecDense(2, []float64{1, 1}), Cost: 2}

	h := NewLocalSearch()
	h.Improve(ctx, incumbent)

	best, ok := ctx.Pool.Best()
	if !ok {
		t.Fatal("expected local search to find an improving move from (1,1)")
	}
	if best.Cost >= incumbent.Cost {
		t.Errorf("best cost = %v, want < %v", best.Cost, incumbent.Cost)
	}
	if best.Solution.AtVec(0)+best.Solution.AtVec(1) < 1-numerics.FeasTol {
		t.Errorf("improved solution %v violates x+y>=1", best.Solution.RawVector().Data)
	}
}

func TestGeneticRoundingNoOpWithoutBinaries(t *testing.T) {
	// An all-continuous model should be a no-op: nothing to evolve.
	m := mip.New(
		1, 1,
		[]float64{0}, []float64{1},
		[]float64{0}, []float64{numerics.Infval},
		[]float64{1},
		[]bool{false},
		[][]sparse.Entry{{{Col: 0, Value: 1}}},
		[]string{"x"}, []string{"c0"},
		0, 0,
	)
	ctx := newContext(m, []float64{0.5})
	h := NewGeneticRounding()
	h.Execute(ctx)
	if ctx.Pool.Size() != 0 {
		t.Errorf("expected no-op on an all-continuous model, got %d pool entries", ctx.Pool.Size())
	}
}
