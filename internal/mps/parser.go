// Package mps implements the fixed/free-format MPS front-end of
// spec.md §6: NAME/ROWS/COLUMNS/RHS/RANGES/BOUNDS/ENDATA sections,
// N/L/G/E row types, INTORG/INTEND markers, and the UP/LO/FX/MI/PL/FR/BV
// bound types, with transparent gzip/bzip2 decompression by filename
// suffix. Grounded on the teacher's bufio.Scanner-based line parsing
// idiom (src/scpcs_solve/scpcs/instance.go's parseFirstLine et al.) and
// on the JChinneck-CCLPv7 MPS reader's row/col state-machine shape.
package mps

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/zrjer/GPH/internal/mip"
	"github.com/zrjer/GPH/internal/numerics"
	"github.com/zrjer/GPH/internal/sparse"
)

// ParseError reports a line-addressed MPS syntax problem (spec.md §7's
// ParseError kind).
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mps: line %d: %s", e.Line, e.Msg)
}

type section int

const (
	sectNone section = iota
	sectRows
	sectColumns
	sectRHS
	sectRanges
	sectBounds
)

type rowDef struct {
	name string
	kind byte // 'N', 'L', 'G', 'E'
}

type colEntry struct {
	row   int
	value float64
}

// ParseFile opens path, transparently decompressing a .gz or .bz2 suffix,
// and parses it as an MPS file.
func ParseFile(path string) (*mip.MIP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decompress(path, f)
	if err != nil {
		return nil, err
	}
	return Parse(r)
}

func decompress(path string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return gzip.NewReader(r)
	case strings.HasSuffix(path, ".bz2"):
		return bzip2.NewReader(r), nil
	default:
		return r, nil
	}
}

// Parse reads r as an MPS file and returns the resulting MIP.
func Parse(r io.Reader) (*mip.MIP, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var problemName string
	var rows []rowDef
	rowIndex := make(map[string]int)
	objRow := -1

	var colNames []string
	colIndex := make(map[string]int)
	var colEntries [][]colEntry
	var integer []bool
	var lb, ub []float64
	var seenLB, seenUB []bool
	markerInt := false

	rhs := make(map[int]float64)
	rangeVal := make(map[int]float64)

	sect := sectNone
	lineNo := 0
	done := false

	for !done && scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		if !startsWithSpace(line) {
			fields := strings.Fields(line)
			switch strings.ToUpper(fields[0]) {
			case "NAME":
				if len(fields) > 1 {
					problemName = fields[1]
				}
				continue
			case "ROWS":
				sect = sectRows
				continue
			case "COLUMNS":
				sect = sectColumns
				continue
			case "RHS":
				sect = sectRHS
				continue
			case "RANGES":
				sect = sectRanges
				continue
			case "BOUNDS":
				sect = sectBounds
				continue
			case "ENDATA":
				done = true
				continue
			default:
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unexpected section header %q", fields[0])}
			}
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch sect {
		case sectRows:
			kind := strings.ToUpper(fields[0])
			rname := fields[1]
			if kind == "N" && objRow == -1 {
				objRow = len(rows)
			}
			rowIndex[rname] = len(rows)
			rows = append(rows, rowDef{name: rname, kind: kind[0]})

		case sectColumns:
			if len(fields) >= 3 && strings.ToUpper(fields[1]) == "'MARKER'" {
				switch {
				case strings.Contains(strings.ToUpper(fields[2]), "INTORG"):
					markerInt = true
				case strings.Contains(strings.ToUpper(fields[2]), "INTEND"):
					markerInt = false
				}
				continue
			}
			cname := fields[0]
			ci, ok := colIndex[cname]
			if !ok {
				ci = len(colNames)
				colIndex[cname] = ci
				colNames = append(colNames, cname)
				colEntries = append(colEntries, nil)
				integer = append(integer, markerInt)
				lb = append(lb, 0)
				ub = append(ub, numerics.Infval)
				seenLB = append(seenLB, false)
				seenUB = append(seenUB, false)
			}
			for i := 1; i+1 < len(fields); i += 2 {
				rname := fields[i]
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("bad column coefficient %q", fields[i+1])}
				}
				ri, ok := rowIndex[rname]
				if !ok {
					return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown row %q", rname)}
				}
				colEntries[ci] = append(colEntries[ci], colEntry{row: ri, value: val})
			}

		case sectRHS:
			// Single pass: the last occurrence of a row's RHS wins, rather
			// than the duplicate-accumulation bug in the original parser
			// (spec.md §9).
			for i := 1; i+1 < len(fields); i += 2 {
				rname := fields[i]
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("bad RHS value %q", fields[i+1])}
				}
				ri, ok := rowIndex[rname]
				if !ok {
					return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown row %q", rname)}
				}
				rhs[ri] = val
			}

		case sectRanges:
			for i := 1; i+1 < len(fields); i += 2 {
				rname := fields[i]
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("bad RANGES value %q", fields[i+1])}
				}
				ri, ok := rowIndex[rname]
				if !ok {
					return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown row %q", rname)}
				}
				rangeVal[ri] = val
			}

		case sectBounds:
			if len(fields) < 3 {
				continue
			}
			btype := strings.ToUpper(fields[0])
			cname := fields[2]
			ci, ok := colIndex[cname]
			if !ok {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown column %q", cname)}
			}
			var val float64
			if len(fields) > 3 {
				v, err := strconv.ParseFloat(fields[3], 64)
				if err != nil {
					return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("bad bound value %q", fields[3])}
				}
				val = v
			}
			switch btype {
			case "UP":
				ub[ci] = val
				seenUB[ci] = true
				if val < 0 && !seenLB[ci] {
					lb[ci] = -numerics.Infval
				}
			case "LO":
				lb[ci] = val
				seenLB[ci] = true
			case "FX":
				lb[ci], ub[ci] = val, val
				seenLB[ci], seenUB[ci] = true, true
			case "MI":
				lb[ci] = -numerics.Infval
				seenLB[ci] = true
			case "PL":
				ub[ci] = numerics.Infval
				seenUB[ci] = true
			case "FR":
				lb[ci], ub[ci] = -numerics.Infval, numerics.Infval
				seenLB[ci], seenUB[ci] = true, true
			case "BV":
				lb[ci], ub[ci] = 0, 1
				integer[ci] = true
				seenLB[ci], seenUB[ci] = true, true
			default:
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unknown bound type %q", btype)}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if objRow == -1 {
		return nil, &ParseError{Line: lineNo, Msg: "no objective (N) row found"}
	}

	return build(problemName, rows, objRow, colNames, colEntries, integer, lb, ub, rhs, rangeVal)
}

func startsWithSpace(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

// build reorders columns so integer columns occupy the prefix required
// by mip.MIP (binary first, then general-integer, then continuous),
// strips the objective row out of the constraint matrix, and resolves
// each row's [lhs, rhs] interval from its type plus an optional RANGES
// entry.
func build(name string, rows []rowDef, objRow int, colNames []string, colEntries [][]colEntry, integer []bool, lb, ub []float64, rhs map[int]float64, rangeVal map[int]float64) (*mip.MIP, error) {
	ncols := len(colNames)

	var order []int
	var nbin, nint int
	isBin := func(c int) bool { return integer[c] && lb[c] == 0 && ub[c] == 1 }
	for c := 0; c < ncols; c++ {
		if isBin(c) {
			order = append(order, c)
			nbin++
		}
	}
	for c := 0; c < ncols; c++ {
		if integer[c] && !isBin(c) {
			order = append(order, c)
			nint++
		}
	}
	for c := 0; c < ncols; c++ {
		if !integer[c] {
			order = append(order, c)
		}
	}

	newIndex := make([]int, ncols)
	for newC, oldC := range order {
		newIndex[oldC] = newC
	}

	newColNames := make([]string, ncols)
	newLB := make([]float64, ncols)
	newUB := make([]float64, ncols)
	newInteger := make([]bool, ncols)
	newObj := make([]float64, ncols)

	rowRemap := make([]int, len(rows))
	nr := 0
	for r := range rows {
		if r == objRow {
			rowRemap[r] = -1
			continue
		}
		rowRemap[r] = nr
		nr++
	}
	rowsOut := make([][]sparse.Entry, nr)

	for oldC, entries := range colEntries {
		newC := newIndex[oldC]
		newColNames[newC] = colNames[oldC]
		newLB[newC] = lb[oldC]
		newUB[newC] = ub[oldC]
		newInteger[newC] = integer[oldC]
		for _, e := range entries {
			if e.row == objRow {
				newObj[newC] += e.value
				continue
			}
			nr2 := rowRemap[e.row]
			rowsOut[nr2] = append(rowsOut[nr2], sparse.Entry{Col: newC, Value: e.value})
		}
	}

	lhsOut := make([]float64, nr)
	rhsOut := make([]float64, nr)
	rowNames := make([]string, nr)
	for r, rd := range rows {
		if r == objRow {
			continue
		}
		nr2 := rowRemap[r]
		rowNames[nr2] = rd.name
		rv := rhs[r]
		rg, hasRange := rangeVal[r]

		switch rd.kind {
		case 'L':
			rhsOut[nr2] = rv
			lhsOut[nr2] = -numerics.Infval
			if hasRange {
				lhsOut[nr2] = rv - math.Abs(rg)
			}
		case 'G':
			lhsOut[nr2] = rv
			rhsOut[nr2] = numerics.Infval
			if hasRange {
				rhsOut[nr2] = rv + math.Abs(rg)
			}
		case 'E':
			lhsOut[nr2] = rv
			rhsOut[nr2] = rv
			if hasRange {
				if rg >= 0 {
					rhsOut[nr2] = rv + rg
				} else {
					lhsOut[nr2] = rv + rg
				}
			}
		default:
			return nil, &ParseError{Msg: fmt.Sprintf("unsupported row type %q for row %q", string(rd.kind), rd.name)}
		}
	}

	return mip.New(ncols, nr, newLB, newUB, lhsOut, rhsOut, newObj, newInteger, rowsOut, newColNames, rowNames, nbin, nint), nil
}
