// Command geninst generates synthetic MIP instances in MPS format, for
// smoke-testing and benchmarking the heuristics (spec.md §2 item 16),
// adapted from the teacher's src/generator/generator.go (which generated
// random set-cover instances in its own line format).
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/exp/rand"
)

// generateMPS builds an ncols/nrows knapsack-family MIP: ncols columns
// with random positive objective coefficients, nrows >= constraints each
// touching a random subset of columns (density controls how many),
// nbin of the columns forced binary (BV), the remainder general-integer
// bounded [0, 10].
func generateMPS(seed uint64, nrows, ncols, nbin int, density float64) string {
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder

	fmt.Fprintln(&b, "NAME          SYNTH")
	fmt.Fprintln(&b, "ROWS")
	fmt.Fprintln(&b, " N  COST")
	for r := 0; r < nrows; r++ {
		fmt.Fprintf(&b, " G  R%d\n", r)
	}

	fmt.Fprintln(&b, "COLUMNS")
	fmt.Fprintln(&b, "    MARKER                 'MARKER'                 'INTORG'")
	for c := 0; c < ncols; c++ {
		cost := 1 + rng.Intn(20)
		fmt.Fprintf(&b, "    X%d        COST            %d.0\n", c, cost)
		for r := 0; r < nrows; r++ {
			if rng.Float64() < density {
				fmt.Fprintf(&b, "    X%d        R%d              1.0\n", c, r)
			}
		}
	}
	fmt.Fprintln(&b, "    MARKER                 'MARKER'                 'INTEND'")

	fmt.Fprintln(&b, "RHS")
	for r := 0; r < nrows; r++ {
		rhs := 1 + rng.Intn(int(math.Max(1, float64(ncols)*density/2)))
		fmt.Fprintf(&b, "    RHS       R%d              %d.0\n", r, rhs)
	}

	fmt.Fprintln(&b, "BOUNDS")
	for c := 0; c < ncols; c++ {
		if c < nbin {
			fmt.Fprintf(&b, " BV BND       X%d\n", c)
		} else {
			fmt.Fprintf(&b, " UP BND       X%d              10.0\n", c)
		}
	}
	fmt.Fprintln(&b, "ENDATA")

	return b.String()
}

func main() {
	var outPath string
	var nrows, ncols, nbin int
	var density float64
	var seed uint64

	flag.StringVar(&outPath, "out", "out.mps", "the output file")
	flag.IntVar(&nrows, "rows", 0, "the number of constraint rows")
	flag.IntVar(&ncols, "cols", 0, "the number of columns")
	flag.IntVar(&nbin, "bin", 0, "how many of the columns are forced binary (the rest are general-integer)")
	flag.Float64Var(&density, "density", 0.3, "row/column nonzero density")
	flag.Uint64Var(&seed, "seed", 1, "RNG seed")
	flag.Parse()

	failed := false
	if nrows == 0 {
		fmt.Fprintln(os.Stderr, "Must specify the number of rows")
		failed = true
	}
	if ncols == 0 {
		fmt.Fprintln(os.Stderr, "Must specify the number of columns")
		failed = true
	}
	if nbin > ncols {
		fmt.Fprintln(os.Stderr, "-bin cannot exceed -cols")
		failed = true
	}
	if failed {
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, []byte(generateMPS(seed, nrows, ncols, nbin, density)), 0666); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", outPath, err)
		os.Exit(1)
	}
}
