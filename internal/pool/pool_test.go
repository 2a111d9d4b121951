package pool

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAddOrdering(t *testing.T) {
	p := New(0)
	p.Add(mat.NewVecDense(1, []float64{1}), 5.0)
	p.Add(mat.NewVecDense(1, []float64{2}), 1.0)
	p.Add(mat.NewVecDense(1, []float64{3}), 3.0)

	if p.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", p.Size())
	}
	want := []float64{1.0, 3.0, 5.0}
	for i, w := range want {
		if got := p.At(i).Cost; got != w {
			t.Errorf("At(%d).Cost = %v, want %v", i, got, w)
		}
	}
}

func TestAddTieBreakByInsertionOrder(t *testing.T) {
	p := New(0)
	first := mat.NewVecDense(1, []float64{1})
	second := mat.NewVecDense(1, []float64{2})
	p.Add(first, 2.0)
	p.Add(second, 2.0)
	if p.At(0).Solution != first || p.At(1).Solution != second {
		t.Errorf("expected ties broken by insertion order")
	}
}

func TestLimit(t *testing.T) {
	p := New(2)
	p.Add(mat.NewVecDense(1, nil), 3.0)
	p.Add(mat.NewVecDense(1, nil), 1.0)
	p.Add(mat.NewVecDense(1, nil), 2.0)
	if p.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (bounded)", p.Size())
	}
	if p.At(0).Cost != 1.0 || p.At(1).Cost != 2.0 {
		t.Errorf("expected the two cheapest entries to survive truncation")
	}
}

func TestBestEmpty(t *testing.T) {
	p := New(0)
	if _, ok := p.Best(); ok {
		t.Errorf("expected Best() to report false on an empty pool")
	}
}
