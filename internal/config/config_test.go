package config

import (
	"errors"
	"testing"
)

type fakeHeuristic struct {
	name  string
	depth int64
}

func (f *fakeHeuristic) Name() string { return f.name }

func (f *fakeHeuristic) SetParam(name string, v Value) error {
	switch name {
	case "depth":
		if v.Kind != Int64 {
			return &TypeError{Heuristic: f.name, Param: name, Got: v.Kind, Want: Int64}
		}
		f.depth = v.Int64V
		return nil
	}
	return nil
}

func TestApplyRoutesToNamedHeuristic(t *testing.T) {
	h := &fakeHeuristic{name: "diving"}
	params := []Param{{Heuristic: "diving", Name: "depth", Value: Int64Value(7)}}
	if err := Apply(params, []Setter{h}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.depth != 7 {
		t.Errorf("depth = %d, want 7", h.depth)
	}
}

func TestApplyWarnsOnUnknownHeuristic(t *testing.T) {
	h := &fakeHeuristic{name: "diving"}
	var warned string
	params := []Param{{Heuristic: "nope", Name: "depth", Value: Int64Value(7)}}
	if err := Apply(params, []Setter{h}, func(s string) { warned = s }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warned == "" {
		t.Errorf("expected a warning for the unknown heuristic name")
	}
}

func TestApplyTypeMismatchSurfaces(t *testing.T) {
	h := &fakeHeuristic{name: "diving"}
	params := []Param{{Heuristic: "diving", Name: "depth", Value: StringValue("seven")}}
	err := Apply(params, []Setter{h}, nil)
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected a *TypeError, got %v", err)
	}
}
