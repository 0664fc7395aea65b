package dag

import (
	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/spec"
)

// Plan is a validated, ordered specification.
type Plan struct {
	// Entries are the parsed entries in specification order.
	Entries []*spec.Entry
	// Graph is the dependency graph of Entries.
	Graph *Graph
	// Order is the evaluation order.
	Order []string
	// Constants holds the value of every eagerly expanded constant.
	Constants map[string]any

	byName map[string]*spec.Entry
}

// Build orders entries, rejecting cycles, and expands every constant whose
// references are all eagerly expanded constants. Constants referencing a
// component, a promoted constant or an unknown name stay lazy.
func Build(entries []*spec.Entry) (*Plan, error) {
	g := New(entries)
	order, err := g.Order()
	if err != nil {
		return nil, err
	}

	p := &Plan{
		Entries:   entries,
		Graph:     g,
		Order:     order,
		Constants: make(map[string]any),
		byName:    make(map[string]*spec.Entry, len(entries)),
	}
	for _, e := range entries {
		p.byName[e.Name] = e
	}

	for _, name := range order {
		e := p.byName[name]
		if e.IsComponent() || !p.expandable(e) {
			continue
		}
		v, err := spec.Eval(e.Value, func(ref string) (any, error) {
			val, ok := p.Constants[ref]
			if !ok {
				return nil, werrors.UnknownReference(ref, e.Name)
			}
			return val, nil
		})
		if err != nil {
			return nil, err
		}
		p.Constants[name] = v
	}
	return p, nil
}

// FromSpec parses s and builds its Plan.
func FromSpec(s spec.Spec, opts ...spec.Option) (*Plan, error) {
	parser, err := spec.NewParser(opts...)
	if err != nil {
		return nil, err
	}
	entries, err := parser.Parse(s)
	if err != nil {
		return nil, err
	}
	return Build(entries)
}

func (p *Plan) expandable(e *spec.Entry) bool {
	for _, ref := range e.Refs() {
		if _, ok := p.Constants[ref]; !ok {
			return false
		}
	}
	return true
}

// Entry returns the entry called name.
func (p *Plan) Entry(name string) (*spec.Entry, bool) {
	e, ok := p.byName[name]
	return e, ok
}

// Has reports whether name is defined.
func (p *Plan) Has(name string) bool {
	_, ok := p.byName[name]
	return ok
}

// Names returns every entry name in specification order.
func (p *Plan) Names() []string {
	return p.Graph.Nodes()
}

// Eager reports whether name is a constant expanded at construction.
func (p *Plan) Eager(name string) bool {
	_, ok := p.Constants[name]
	return ok
}

// Lazy reports whether name is resolved on first access: every component
// and every promoted constant.
func (p *Plan) Lazy(name string) bool {
	return p.Has(name) && !p.Eager(name)
}
