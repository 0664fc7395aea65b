package compiler

import (
	"fmt"
	"strconv"
	"strings"

	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/spec"
)

// body renders the statements of the builder of e. References are looked
// up first, in evaluation order, then the value is assembled from them.
func (c *Compiler) body(e *spec.Entry) ([]string, bool, error) {
	refs := e.Refs()
	for i, ref := range refs {
		if c.plan.Has(ref) {
			continue
		}
		var lines []string
		for _, prev := range refs[:i] {
			lines = append(lines,
				fmt.Sprintf("if _, err := c.%s(ctx); err != nil {", c.methods[prev]),
				"\treturn nil, err",
				"}",
			)
		}
		lines = append(lines, fmt.Sprintf("return nil, errors.UnknownReference(%s, %s)", strconv.Quote(ref), strconv.Quote(e.Name)))
		return lines, false, nil
	}

	r := &renderer{entry: e.Name, vars: make(map[string]string, len(refs))}
	var lines []string
	for i, ref := range refs {
		v := "v" + strconv.Itoa(i)
		r.vars[ref] = v
		lines = append(lines,
			fmt.Sprintf("%s, err := c.%s(ctx)", v, c.methods[ref]),
			"if err != nil {",
			"\treturn nil, err",
			"}",
		)
	}

	if !e.IsComponent() {
		expr, err := r.expr(e.Value)
		if err != nil {
			return nil, false, err
		}
		return append(lines, "return "+expr+", nil"), r.interpolates, nil
	}

	args, err := r.args(e.Args)
	if err != nil {
		return nil, false, err
	}
	lines = append(lines, fmt.Sprintf("return resolve.Construct(ctx, c.ctors, %s, %s, %s)",
		strconv.Quote(e.Locator), strconv.Quote(e.Factory), args))
	return lines, r.interpolates, nil
}

// renderer writes value nodes as Go expressions.
type renderer struct {
	entry        string
	vars         map[string]string
	interpolates bool
}

func (r *renderer) literal(v any) (string, error) {
	s, ok := goLiteral(v)
	if !ok {
		return "", werrors.UnsupportedValue(r.entry, v)
	}
	return s, nil
}

func (r *renderer) expr(v spec.Value) (string, error) {
	switch n := v.(type) {
	case spec.Literal:
		return r.literal(n.Value)
	case spec.Ref:
		return r.vars[n.Name], nil
	case spec.Template:
		r.interpolates = true
		parts := make([]string, len(n.Parts))
		for i, p := range n.Parts {
			if p.Ref != "" {
				parts[i] = r.vars[p.Ref]
			} else {
				parts[i] = strconv.Quote(p.Text)
			}
		}
		return "spec.Interpolate(" + strings.Join(parts, ", ") + ")", nil
	case spec.List:
		items, err := r.list(n.Items)
		if err != nil {
			return "", err
		}
		return "[]any{" + items + "}", nil
	case spec.Map:
		return r.mapExpr(n)
	}
	return "", fmt.Errorf("compiler: unknown value node %T", v)
}

func (r *renderer) list(values []spec.Value) (string, error) {
	items := make([]string, len(values))
	for i, v := range values {
		s, err := r.expr(v)
		if err != nil {
			return "", err
		}
		items[i] = s
	}
	return strings.Join(items, ", "), nil
}

func (r *renderer) mapExpr(m spec.Map) (string, error) {
	typ := "map[any]any"
	switch m.Kind {
	case spec.StringKeys:
		typ = "map[string]any"
	case spec.IntKeys:
		typ = "map[int]any"
	}
	entries := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		key, err := r.literal(e.Key)
		if err != nil {
			return "", err
		}
		val, err := r.expr(e.Value)
		if err != nil {
			return "", err
		}
		entries[i] = key + ": " + val
	}
	return typ + "{" + strings.Join(entries, ", ") + "}", nil
}

func (r *renderer) args(a spec.Arguments) (string, error) {
	var fields []string
	if len(a.Positional) > 0 {
		items, err := r.list(a.Positional)
		if err != nil {
			return "", err
		}
		fields = append(fields, "Positional: []any{"+items+"}")
	}
	if len(a.Keyword) > 0 {
		kw := make([]string, len(a.Keyword))
		for i, k := range a.Keyword {
			val, err := r.expr(k.Value)
			if err != nil {
				return "", err
			}
			kw[i] = strconv.Quote(k.Name) + ": " + val
		}
		fields = append(fields, "Keyword: map[string]any{"+strings.Join(kw, ", ")+"}")
	}
	return "symbols.Args{" + strings.Join(fields, ", ") + "}", nil
}
