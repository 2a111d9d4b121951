// Package solformat writes the SOL output format of spec.md §6: one line
// per nonzero variable ("<name> <value>"), preceded by a comment line
// giving the objective value.
package solformat

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/zrjer/GPH/internal/numerics"
)

// Write renders sol (cost, objective) to w using colNames for the
// variable names. Only entries whose magnitude exceeds feastol are
// printed, matching the "nonzero variable" wording of spec.md §6.
func Write(w io.Writer, colNames []string, sol *mat.VecDense, cost float64) error {
	if _, err := fmt.Fprintf(w, "# Objective value: %v\n", cost); err != nil {
		return err
	}
	for c := 0; c < sol.Len(); c++ {
		v := sol.AtVec(c)
		if v > -numerics.FeasTol && v < numerics.FeasTol {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %v\n", colNames[c], v); err != nil {
			return err
		}
	}
	return nil
}
