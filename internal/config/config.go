// Package config implements the Search's (heuristic, param, value)
// routing (spec.md §4.11, design note "Configuration").
package config

import "fmt"

// Kind tags which field of Value is populated.
type Kind int

const (
	Bool Kind = iota
	Int64
	Float64
	String
)

// Value is a tagged union over {bool, i64, f64, string}.
type Value struct {
	Kind    Kind
	BoolV   bool
	Int64V  int64
	Float64V float64
	StringV string
}

func BoolValue(v bool) Value       { return Value{Kind: Bool, BoolV: v} }
func Int64Value(v int64) Value     { return Value{Kind: Int64, Int64V: v} }
func Float64Value(v float64) Value { return Value{Kind: Float64, Float64V: v} }
func StringValue(v string) Value   { return Value{Kind: String, StringV: v} }

// Param is one (heuristic, param, value) configuration triple.
type Param struct {
	Heuristic string
	Name      string
	Value     Value
}

// TypeError is surfaced when a setParam call receives a Value whose Kind
// doesn't match what the parameter expects (spec.md §7 ConfigTypeError).
type TypeError struct {
	Heuristic, Param string
	Got, Want        Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("config: heuristic %q param %q: wrong type (got kind %d, want kind %d)", e.Heuristic, e.Param, e.Got, e.Want)
}

// Setter is implemented by every heuristic so the Search can route
// configuration without knowing each heuristic's concrete type.
type Setter interface {
	Name() string
	SetParam(name string, v Value) error
}

// Apply routes each param to the matching setter by Heuristic name,
// warning (via warn) on unknown heuristic names and letting
// ConfigTypeError from SetParam bubble up unchanged, per spec.md §4.11 /
// §7 ("unknown names are warned and ignored... type mismatches surface
// as a typed error").
func Apply(params []Param, setters []Setter, warn func(string)) error {
	byName := make(map[string]Setter, len(setters))
	for _, s := range setters {
		byName[s.Name()] = s
	}
	for _, p := range params {
		s, ok := byName[p.Heuristic]
		if !ok {
			if warn != nil {
				warn(fmt.Sprintf("config: unknown heuristic %q, ignoring param %q", p.Heuristic, p.Name))
			}
			continue
		}
		if err := s.SetParam(p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}
