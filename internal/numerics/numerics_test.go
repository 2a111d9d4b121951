package numerics

import "testing"

func TestIsFeasEQ(t *testing.T) {
	cases := []struct {
		a, b float64
		want bool
	}{
		{1.0, 1.0, true},
		{1.0, 1.0 + 1e-7, true},
		{1.0, 1.1, false},
	}
	for _, c := range cases {
		if got := IsFeasEQ(c.a, c.b); got != c.want {
			t.Errorf("IsFeasEQ(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIsIntegralAndRounding(t *testing.T) {
	if !IsIntegral(3.0000001) {
		t.Errorf("expected 3.0000001 to be integral within tolerance")
	}
	if IsIntegral(3.1) {
		t.Errorf("expected 3.1 not to be integral")
	}
	if got := Floor(3.0000001); got != 3 {
		t.Errorf("Floor(3.0000001) = %v, want 3", got)
	}
	if got := Ceil(2.9999999); got != 3 {
		t.Errorf("Ceil(2.9999999) = %v, want 3", got)
	}
	if got := Floor(3.7); got != 3 {
		t.Errorf("Floor(3.7) = %v, want 3", got)
	}
	if got := Ceil(3.2); got != 4 {
		t.Errorf("Ceil(3.2) = %v, want 4", got)
	}
}

func TestInfPredicates(t *testing.T) {
	if !IsInf(Infval) {
		t.Errorf("expected Infval to be infinite")
	}
	if !IsMinusInf(-Infval) {
		t.Errorf("expected -Infval to be minus infinite")
	}
	if IsInf(1e20) {
		t.Errorf("1e20 should not count as infinite")
	}
}
