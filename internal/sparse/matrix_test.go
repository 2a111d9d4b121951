package sparse

import "testing"

func build() *Matrix {
	// 2 rows, 3 cols:
	// row0: col0=1, col2=3
	// row1: col1=2
	return NewMatrix(2, 3, [][]Entry{
		{{Col: 0, Value: 1}, {Col: 2, Value: 3}},
		{{Col: 1, Value: 2}},
	})
}

func TestRow(t *testing.T) {
	m := build()
	idx, vals := m.Row(0)
	if len(idx) != 2 || idx[0] != 0 || idx[1] != 2 || vals[0] != 1 || vals[1] != 3 {
		t.Fatalf("unexpected row 0: idx=%v vals=%v", idx, vals)
	}
	idx, vals = m.Row(1)
	if len(idx) != 1 || idx[0] != 1 || vals[0] != 2 {
		t.Fatalf("unexpected row 1: idx=%v vals=%v", idx, vals)
	}
}

func TestZeroEntriesDropped(t *testing.T) {
	m := NewMatrix(1, 2, [][]Entry{{{Col: 0, Value: 0}, {Col: 1, Value: 5}}})
	if m.NNZ() != 1 {
		t.Fatalf("expected zero entry to be dropped, NNZ=%d", m.NNZ())
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	m := build()
	tr := m.Transpose()
	if tr.NRows != 3 || tr.NCols != 2 {
		t.Fatalf("unexpected transpose dims: %d x %d", tr.NRows, tr.NCols)
	}
	back := tr.Transpose()
	if back.NRows != m.NRows || back.NCols != m.NCols {
		t.Fatalf("round trip dims mismatch")
	}
	for r := 0; r < m.NRows; r++ {
		origIdx, origVals := m.Row(r)
		gotIdx, gotVals := back.Row(r)
		gotMap := make(map[int]float64)
		for i, c := range gotIdx {
			gotMap[c] = gotVals[i]
		}
		for i, c := range origIdx {
			if gotMap[c] != origVals[i] {
				t.Errorf("row %d col %d: want %v got %v", r, c, origVals[i], gotMap[c])
			}
		}
		if len(gotIdx) != len(origIdx) {
			t.Errorf("row %d: nnz mismatch want %d got %d", r, len(origIdx), len(gotIdx))
		}
	}
}

func TestTransposeValues(t *testing.T) {
	m := build()
	tr := m.Transpose()
	// column 0 of m becomes row 0 of transpose, containing (row=0, val=1)
	idx, vals := tr.Row(0)
	if len(idx) != 1 || idx[0] != 0 || vals[0] != 1 {
		t.Fatalf("unexpected transposed row 0: idx=%v vals=%v", idx, vals)
	}
	idx, vals = tr.Row(2)
	if len(idx) != 1 || idx[0] != 0 || vals[0] != 3 {
		t.Fatalf("unexpected transposed row 2: idx=%v vals=%v", idx, vals)
	}
}
