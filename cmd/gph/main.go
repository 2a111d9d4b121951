package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/draffensperger/golp"
	"github.com/lanl/highs"

	"github.com/zrjer/GPH/internal/heuristic"
	"github.com/zrjer/GPH/internal/lpsolver"
	"github.com/zrjer/GPH/internal/lpsolver/golpadapter"
	"github.com/zrjer/GPH/internal/lpsolver/highsadapter"
	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/mps"
	"github.com/zrjer/GPH/internal/numerics"
	"github.com/zrjer/GPH/internal/search"
	"github.com/zrjer/GPH/internal/solformat"
)

func main() {
	var instPath string
	var timeLimit float64
	var poolLimit int
	var backend string

	flag.StringVar(&instPath, "inst", "", "path to an MPS instance (optionally .gz/.bz2 compressed)")
	flag.Float64Var(&timeLimit, "time", 30, "time budget in seconds")
	flag.IntVar(&poolLimit, "pool", 10, "per-heuristic solution pool size (0 = unbounded)")
	flag.StringVar(&backend, "backend", "highs", "LP backend: \"highs\" or \"golp\"")
	flag.Parse()

	if instPath == "" {
		fmt.Fprintln(os.Stderr, "Must specify -inst")
		os.Exit(1)
	}

	m, err := mps.ParseFile(instPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", instPath, err)
		os.Exit(1)
	}

	var solver lpsolver.Solver
	switch backend {
	case "highs":
		solver = newRootSolver(m)
	case "golp":
		solver = newGolpSolver(m)
	default:
		fmt.Fprintf(os.Stderr, "Unknown -backend %q (want \"highs\" or \"golp\")\n", backend)
		os.Exit(1)
	}

	feas := []heuristic.FeasibilityHeuristic{
		heuristic.NewMinLockRounding(),
		heuristic.NewBoundSolution(),
		heuristic.NewCoefficientDiving(),
		heuristic.NewGeneticRounding(),
	}

	improv := []heuristic.ImprovementHeuristic{
		heuristic.NewLocalSearch(),
	}

	res, err := search.Run(m, solver, feas, improv, search.Options{
		TimeLimitSeconds: timeLimit,
		PoolLimit:        poolLimit,
		Warn:             func(msg string) { fmt.Fprintln(os.Stderr, msg) },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving %q: %v\n", instPath, err)
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, search.FormatReport(res))

	if !res.Found {
		os.Exit(0)
	}
	if err := solformat.Write(os.Stdout, m.ColNames, res.Best.Solution, res.Best.Cost); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing solution: %v\n", err)
		os.Exit(1)
	}
}

func newRootSolver(m *mip.MIP) lpsolver.Solver {
	nz := make([]highs.Nonzero, 0, m.Stats.NNZMat)
	for r := 0; r < m.NRows; r++ {
		cols, vals := m.A.Row(r)
		for i, c := range cols {
			nz = append(nz, highs.Nonzero{Row: r, Col: c, Val: vals[i]})
		}
	}
	varTypes := make([]highs.VariableType, m.NCols)
	for c := 0; c < m.NCols; c++ {
		varTypes[c] = highs.ContinuousType
	}
	return highsadapter.New(
		false,
		m.Obj.RawVector().Data,
		m.LB.RawVector().Data,
		m.UB.RawVector().Data,
		m.LHS.RawVector().Data,
		m.RHS.RawVector().Data,
		nz,
		varTypes,
	)
}

// newGolpSolver builds the secondary lp_solve-backed root solver
// (-backend golp). golp.AddConstraint takes a single row type plus one
// right-hand side, so a genuine two-sided range row (lhs and rhs both
// finite and distinct) can only be represented as one side; this backend
// keeps the rhs side (<=) for range rows, a documented simplification of
// -backend highs's full two-sided handling.
func newGolpSolver(m *mip.MIP) lpsolver.Solver {
	rows := make([][]float64, m.NRows)
	rowType := make([]int, m.NRows)
	rowRHS := make([]float64, m.NRows)
	for r := 0; r < m.NRows; r++ {
		dense := make([]float64, m.NCols)
		cols, vals := m.A.Row(r)
		for i, c := range cols {
			dense[c] = vals[i]
		}
		rows[r] = dense

		lhs, rhs := m.LHS.AtVec(r), m.RHS.AtVec(r)
		switch {
		case lhs == rhs:
			rowType[r], rowRHS[r] = golp.EQ, rhs
		case !numerics.IsInf(rhs):
			rowType[r], rowRHS[r] = golp.LE, rhs
		default:
			rowType[r], rowRHS[r] = golp.GE, lhs
		}
	}

	integer := make([]bool, m.NCols)

	return golpadapter.New(
		true,
		m.Obj.RawVector().Data,
		m.LB.RawVector().Data,
		m.UB.RawVector().Data,
		rows,
		rowType,
		rowRHS,
		integer,
	)
}
