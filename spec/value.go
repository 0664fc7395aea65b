package spec

import (
	"fmt"
	"strings"
)

// Value is a node of a parsed specification value.
type Value interface {
	isValue()
}

// Literal is a subtree without references. Value is the original object.
type Literal struct {
	Value any
}

// Ref is a whole-string placeholder.
type Ref struct {
	Name string
}

// Template is a string mixing text and placeholders.
type Template struct {
	Parts []Part
}

// Part is a piece of a Template: literal text, or a reference when Ref is set.
type Part struct {
	Text string
	Ref  string
}

// List is a sequence containing at least one reference.
type List struct {
	Items []Value
}

// MapKind is the key type of a rebuilt Map.
type MapKind int

const (
	// StringKeys rebuilds as map[string]any.
	StringKeys MapKind = iota
	// IntKeys rebuilds as map[int]any.
	IntKeys
	// AnyKeys rebuilds as map[any]any.
	AnyKeys
)

// Map is a mapping containing at least one reference.
type Map struct {
	Kind    MapKind
	Entries []MapEntry
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   any
	Value Value
}

func (Literal) isValue()  {}
func (Ref) isValue()      {}
func (Template) isValue() {}
func (List) isValue()     {}
func (Map) isValue()      {}

// Walk calls fn for every reference in v, depth-first in evaluation order.
func Walk(v Value, fn func(name string)) {
	switch n := v.(type) {
	case Ref:
		fn(n.Name)
	case Template:
		for _, p := range n.Parts {
			if p.Ref != "" {
				fn(p.Ref)
			}
		}
	case List:
		for _, it := range n.Items {
			Walk(it, fn)
		}
	case Map:
		for _, e := range n.Entries {
			Walk(e.Value, fn)
		}
	}
}

// Lookup resolves a referenced name to its value.
type Lookup func(name string) (any, error)

// Eval builds the value of v, resolving references through lookup in the
// order Walk visits them.
func Eval(v Value, lookup Lookup) (any, error) {
	switch n := v.(type) {
	case Literal:
		return n.Value, nil
	case Ref:
		return lookup(n.Name)
	case Template:
		parts := make([]any, len(n.Parts))
		for i, p := range n.Parts {
			if p.Ref == "" {
				parts[i] = p.Text
				continue
			}
			val, err := lookup(p.Ref)
			if err != nil {
				return nil, err
			}
			parts[i] = val
		}
		return Interpolate(parts...), nil
	case List:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			val, err := Eval(it, lookup)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	case Map:
		return evalMap(n, lookup)
	}
	return nil, fmt.Errorf("spec: unknown value node %T", v)
}

func evalMap(m Map, lookup Lookup) (any, error) {
	vals := make([]any, len(m.Entries))
	for i, e := range m.Entries {
		val, err := Eval(e.Value, lookup)
		if err != nil {
			return nil, err
		}
		vals[i] = val
	}
	switch m.Kind {
	case StringKeys:
		out := make(map[string]any, len(vals))
		for i, e := range m.Entries {
			out[e.Key.(string)] = vals[i]
		}
		return out, nil
	case IntKeys:
		out := make(map[int]any, len(vals))
		for i, e := range m.Entries {
			out[e.Key.(int)] = vals[i]
		}
		return out, nil
	default:
		out := make(map[any]any, len(vals))
		for i, e := range m.Entries {
			out[e.Key] = vals[i]
		}
		return out, nil
	}
}

// EvalArgs evaluates constructor arguments, positional first, then keyword
// arguments in name order. Empty groups are returned as nil.
func EvalArgs(a Arguments, lookup Lookup) ([]any, map[string]any, error) {
	var pos []any
	var kw map[string]any
	if len(a.Positional) > 0 {
		pos = make([]any, len(a.Positional))
		for i, v := range a.Positional {
			val, err := Eval(v, lookup)
			if err != nil {
				return nil, nil, err
			}
			pos[i] = val
		}
	}
	if len(a.Keyword) > 0 {
		kw = make(map[string]any, len(a.Keyword))
		for _, k := range a.Keyword {
			val, err := Eval(k.Value, lookup)
			if err != nil {
				return nil, nil, err
			}
			kw[k.Name] = val
		}
	}
	return pos, kw, nil
}

// Interpolate concatenates the default string form of every part.
func Interpolate(parts ...any) string {
	var b strings.Builder
	for _, p := range parts {
		if s, ok := p.(string); ok {
			b.WriteString(s)
			continue
		}
		fmt.Fprint(&b, p)
	}
	return b.String()
}
