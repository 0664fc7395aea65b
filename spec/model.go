package spec

import (
	"sort"
)

// Spec is an ordered specification mapping. Keys are unique.
type Spec []Item

// Item is one key/value pair of a Spec.
type Item struct {
	Key   string
	Value any
}

// FromMap builds a Spec from an unordered map, ordering keys lexicographically.
func FromMap(m map[string]any) Spec {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := make(Spec, 0, len(keys))
	for _, k := range keys {
		s = append(s, Item{Key: k, Value: m[k]})
	}
	return s
}

// Keys returns the keys in specification order.
func (s Spec) Keys() []string {
	keys := make([]string, len(s))
	for i, it := range s {
		keys[i] = it.Key
	}
	return keys
}

// Lookup returns the value stored under key.
func (s Spec) Lookup(key string) (any, bool) {
	for _, it := range s {
		if it.Key == key {
			return it.Value, true
		}
	}
	return nil, false
}

// Kind classifies an entry.
type Kind int

const (
	// Constant entries hold literal values.
	Constant Kind = iota
	// Component entries are built by a constructor.
	Component
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Component {
		return "component"
	}
	return "constant"
}

// Entry is a parsed specification entry.
type Entry struct {
	// Key is the raw specification key.
	Key string
	// Name is the identifier other entries reference.
	Name string
	// Kind is Component or Constant.
	Kind Kind
	// Index is the position of the entry in the specification.
	Index int
	// Locator identifies the constructor of a component.
	Locator string
	// Factory is the optional named factory of the constructor.
	Factory string
	// Args are the normalized constructor arguments of a component.
	Args Arguments
	// Value is the parsed value of a constant.
	Value Value
	// Raw is the value as given in the specification.
	Raw any
}

// IsComponent reports whether the entry is built by a constructor.
func (e *Entry) IsComponent() bool { return e.Kind == Component }

// Refs returns the distinct names referenced by the entry, in evaluation order.
func (e *Entry) Refs() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	if e.Kind == Component {
		for _, v := range e.Args.Positional {
			Walk(v, add)
		}
		for _, kw := range e.Args.Keyword {
			Walk(kw.Value, add)
		}
		return out
	}
	Walk(e.Value, add)
	return out
}

// Arguments are the normalized constructor arguments of a component.
// Keyword arguments are sorted by name.
type Arguments struct {
	Positional []Value
	Keyword    []Keyword
}

// Keyword is a named constructor argument.
type Keyword struct {
	Name  string
	Value Value
}

// Empty reports whether there are no arguments.
func (a Arguments) Empty() bool {
	return len(a.Positional) == 0 && len(a.Keyword) == 0
}
