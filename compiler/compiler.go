package compiler

import (
	"bytes"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/kbukum/wirekit/dag"
	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/spec"
	"github.com/kbukum/wirekit/validation"
)

// DefaultPackage is the package name used by Compile.
const DefaultPackage = "wired"

// Options select the features of generated code.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Async adds the Aio accessors.
	Async bool
	// ThreadSafe pins the locking protocol on.
	ThreadSafe bool
}

// Compiler generates containers for one specification.
type Compiler struct {
	plan    *dag.Plan
	methods map[string]string
	log     *logger.Logger
}

// New parses s and builds its plan, failing like di.New on invalid keys,
// duplicate names and cycles.
func New(s spec.Spec, opts ...spec.Option) (*Compiler, error) {
	plan, err := dag.FromSpec(s, opts...)
	if err != nil {
		return nil, err
	}
	return FromPlan(plan)
}

// FromPlan creates a Compiler for a built plan.
func FromPlan(plan *dag.Plan) (*Compiler, error) {
	methods, err := methodNames(plan.Names())
	if err != nil {
		return nil, err
	}
	return &Compiler{plan: plan, methods: methods, log: logger.Get("compiler")}, nil
}

// Compile generates package DefaultPackage.
func (c *Compiler) Compile(async, threadSafe bool) ([]byte, error) {
	return c.Generate(Options{Package: DefaultPackage, Async: async, ThreadSafe: threadSafe})
}

// Generate returns gofmt-formatted source of a container package.
func (c *Compiler) Generate(o Options) ([]byte, error) {
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if err := validation.New().Identifier("package", o.Package).Err(); err != nil {
		return nil, err
	}

	f := file{Package: o.Package, Async: o.Async, ThreadSafe: o.ThreadSafe}
	quoted := make([]string, 0, len(c.plan.Order))
	for _, name := range c.plan.Names() {
		quoted = append(quoted, strconv.Quote(name))
	}
	f.Names = strings.Join(quoted, ", ")

	for _, name := range c.plan.Order {
		v, ok := c.plan.Constants[name]
		if !ok {
			continue
		}
		lit, ok := goLiteral(v)
		if !ok {
			return nil, werrors.UnsupportedValue(name, v)
		}
		f.Seeds = append(f.Seeds, seed{Name: strconv.Quote(name), Value: lit})
	}

	for _, name := range c.plan.Names() {
		e, _ := c.plan.Entry(name)
		m := entry{Name: name, Quoted: strconv.Quote(name), Method: c.methods[name], Eager: c.plan.Eager(name)}
		if !m.Eager {
			lines, interpolates, err := c.body(e)
			if err != nil {
				return nil, err
			}
			m.Body = strings.Join(lines, "\n\t")
			f.Spec = f.Spec || interpolates
		}
		f.Entries = append(f.Entries, m)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, f); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, err
	}
	c.log.Debug("container generated", logger.Fields(
		"package", o.Package,
		logger.FieldCount, len(f.Entries),
		"async", o.Async,
		"thread_safe", o.ThreadSafe,
	))
	return src, nil
}

// Plan returns the plan the compiler generates from.
func (c *Compiler) Plan() *dag.Plan { return c.plan }

// Method returns the method name generated for entry name.
func (c *Compiler) Method(name string) (string, bool) {
	m, ok := c.methods[name]
	return m, ok
}

type file struct {
	Package    string
	Async      bool
	ThreadSafe bool
	Spec       bool
	Names      string
	Seeds      []seed
	Entries    []entry
}

type seed struct {
	Name  string
	Value string
}

type entry struct {
	Name   string
	Quoted string
	Method string
	Eager  bool
	Body   string
}

var fileTemplate = template.Must(template.New("container").Parse(`// Code generated by wirekit. DO NOT EDIT.

package {{.Package}}

import (
	"context"

	"github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/resolve"
{{- if .Spec}}
	"github.com/kbukum/wirekit/spec"
{{- end}}
	"github.com/kbukum/wirekit/symbols"
)

var names = []string{ {{- .Names -}} }

// Container holds the wired entries.
type Container struct {
	table *resolve.Table
	ctors symbols.Resolver
}

// New creates a Container resolving components through r.
func New(r symbols.Resolver, opts ...resolve.Option) (*Container, error) {
	opts = append(opts, resolve.WithThreadSafe({{.ThreadSafe}}))
	rt, err := resolve.NewTable(names, opts...)
	if err != nil {
		return nil, err
	}
{{- range .Seeds}}
	rt.Seed({{.Name}}, {{.Value}})
{{- end}}
	return &Container{table: rt, ctors: r}, nil
}

// Get returns the entry called name.
func (c *Container) Get(ctx context.Context, name string) (any, error) {
	switch name {
{{- range .Entries}}
	case {{.Quoted}}:
		return c.{{.Method}}(ctx)
{{- end}}
	}
	return nil, errors.UnknownEntry(name)
}

// Names returns every entry name in specification order.
func (c *Container) Names() []string {
	return append([]string(nil), names...)
}

// Close closes every instance implementing io.Closer and joins the errors.
func (c *Container) Close() error {
	return c.table.Close()
}
{{- range .Entries}}

// {{.Method}} returns the {{.Name}} entry.
func (c *Container) {{.Method}}(ctx context.Context) (any, error) {
{{- if .Eager}}
	v, _ := c.table.Cached({{.Quoted}})
	return v, nil
}
{{- else}}
	return c.table.Resolve(ctx, {{.Quoted}}, c.make{{.Method}})
}

func (c *Container) make{{.Method}}(ctx context.Context) (any, error) {
	{{.Body}}
}
{{- end}}
{{- end}}
{{- if .Async}}

// Aio returns the asynchronous accessors.
func (c *Container) Aio() *Aio {
	return &Aio{c: c}
}

// Aio resolves entries on the worker pool of the container.
type Aio struct {
	c *Container
}

// Get returns a Future of the entry called name.
func (a *Aio) Get(ctx context.Context, name string) *resolve.Future {
	switch name {
{{- range .Entries}}
	case {{.Quoted}}:
		return a.{{.Method}}(ctx)
{{- end}}
	}
	return resolve.Completed(nil, errors.UnknownEntry(name))
}
{{- range .Entries}}

// {{.Method}} returns a Future of the {{.Name}} entry.
func (a *Aio) {{.Method}}(ctx context.Context) *resolve.Future {
{{- if .Eager}}
	return resolve.Completed(a.c.{{.Method}}(ctx))
{{- else}}
	return a.c.table.ResolveAsync(ctx, {{.Quoted}}, a.c.make{{.Method}})
{{- end}}
}
{{- end}}
{{- end}}
`))
