package search

import (
	"fmt"
	"strings"
)

// FormatReport renders res as the user-visible end-of-run summary of
// spec.md §7: one line per heuristic with its runtime, whether it found a
// solution, and its cost if so, with the cost-minimizing entry marked.
func FormatReport(res Result) string {
	var b strings.Builder

	bestName := ""
	if res.Found {
		for _, r := range res.Reports {
			if r.Found && r.Cost == res.Best.Cost {
				bestName = r.Name
				break
			}
		}
	}

	fmt.Fprintln(&b, "heuristic report:")
	for _, r := range res.Reports {
		marker := " "
		if r.Name == bestName {
			marker = "*"
		}
		if r.Found {
			fmt.Fprintf(&b, "%s %-20s runtime=%-12v cost=%v\n", marker, r.Name, r.Runtime, r.Cost)
		} else {
			fmt.Fprintf(&b, "%s %-20s runtime=%-12v (no solution)\n", marker, r.Name, r.Runtime)
		}
	}

	if res.Found {
		fmt.Fprintf(&b, "best objective: %v\n", res.Best.Cost)
	} else {
		fmt.Fprintln(&b, "no feasible solution found")
	}
	return b.String()
}
