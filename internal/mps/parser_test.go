package mps

import (
	"strings"
	"testing"

	"github.com/zrjer/GPH/internal/numerics"
)

const sampleMPS = `NAME          SAMPLE
ROWS
 N  COST
 G  LIM1
 L  LIM2
COLUMNS
    MARKER                 'MARKER'                 'INTORG'
    X1        COST            1.0   LIM1            1.0
    X1        LIM2            1.0
    X2        COST            1.0   LIM1            1.0
    MARKER                 'MARKER'                 'INTEND'
    X3        COST            2.0   LIM2            1.0
RHS
    RHS       LIM1            1.0   LIM2            4.0
BOUNDS
 UP BND       X1              3.0
 BV BND       X2
ENDATA
`

func TestParseSample(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleMPS))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.NCols != 3 || m.NRows != 2 {
		t.Fatalf("dims = (%d,%d), want (3,2)", m.NCols, m.NRows)
	}
	if m.Stats.NBin != 1 {
		t.Errorf("NBin = %d, want 1 (X2 is BV)", m.Stats.NBin)
	}
	if m.Stats.NInt != 1 {
		t.Errorf("NInt = %d, want 1 (X1 is INTORG-marked, bounded [0,3])", m.Stats.NInt)
	}
	if m.Stats.NCont != 1 {
		t.Errorf("NCont = %d, want 1 (X3)", m.Stats.NCont)
	}

	total := 0.0
	for c := 0; c < m.NCols; c++ {
		total += m.Obj.AtVec(c)
	}
	if total != 4 {
		t.Errorf("sum of objective coefficients = %v, want 4 (1+1+2)", total)
	}
}

func TestParseRejectsUnknownRow(t *testing.T) {
	bad := strings.Replace(sampleMPS, "LIM1            1.0   LIM2", "NOSUCHROW      1.0   LIM2", 1)
	if _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatal("expected an error referencing the unknown row")
	}
}

func TestParseRangeOnGRow(t *testing.T) {
	const withRange = `NAME
ROWS
 N  COST
 G  LIM1
COLUMNS
    X1        COST            1.0   LIM1            1.0
RHS
    RHS       LIM1            2.0
RANGES
    RNG       LIM1            3.0
ENDATA
`
	m, err := Parse(strings.NewReader(withRange))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.LHS.AtVec(0) != 2 || m.RHS.AtVec(0) != 5 {
		t.Errorf("row interval = [%v,%v], want [2,5]", m.LHS.AtVec(0), m.RHS.AtVec(0))
	}
}

func TestParseMIUnbounded(t *testing.T) {
	const withMI = `NAME
ROWS
 N  COST
 G  LIM1
COLUMNS
    X1        COST            1.0   LIM1            1.0
RHS
    RHS       LIM1            0.0
BOUNDS
 MI BND       X1
ENDATA
`
	m, err := Parse(strings.NewReader(withMI))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !numerics.IsMinusInf(m.LB.AtVec(0)) {
		t.Errorf("LB = %v, want -inf after MI bound", m.LB.AtVec(0))
	}
}
