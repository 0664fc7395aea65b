package di

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/wirekit/dag"
	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/observability"
	"github.com/kbukum/wirekit/resolve"
	"github.com/kbukum/wirekit/spec"
	"github.com/kbukum/wirekit/symbols"
)

// Accessor resolves one entry with a background context.
type Accessor func() (any, error)

// Container instantiates the entries of a specification on demand and
// caches every instance.
type Container struct {
	id        string
	plan      *dag.Plan
	symbols   symbols.Resolver
	table     *resolve.Table
	log       *logger.Logger
	builders  map[string]resolve.Builder
	accessors map[string]Accessor
	aio       *Aio
}

// New parses s, rejects invalid keys, duplicate names and cycles, expands
// eager constants and returns a container resolving components through r.
func New(s spec.Spec, r symbols.Resolver, opts ...Option) (*Container, error) {
	start := time.Now()
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if r == nil {
		r = symbols.NewRegistry()
	}

	plan, err := dag.FromSpec(s, o.parser...)
	if err != nil {
		return nil, err
	}

	c := &Container{
		id:      uuid.NewString(),
		plan:    plan,
		symbols: r,
		log:     o.log,
	}
	if c.log == nil {
		c.log = logger.Get("container")
	}
	c.log = c.log.WithFields(logger.Fields(logger.FieldContainer, c.id))

	obs := o.observer
	if ro, ok := obs.(*observability.ResolveObserver); ok {
		obs = ro.ForContainer(c.id)
	}
	tableOpts := o.table
	if obs != nil {
		tableOpts = append(tableOpts, resolve.WithObserver(obs))
	}
	c.table, err = resolve.NewTable(plan.Names(), tableOpts...)
	if err != nil {
		return nil, err
	}

	for _, name := range plan.Order {
		if v, ok := plan.Constants[name]; ok {
			c.table.Seed(name, v)
		}
	}

	names := plan.Names()
	c.builders = make(map[string]resolve.Builder, len(names))
	c.accessors = make(map[string]Accessor, len(names))
	for _, name := range names {
		e, _ := plan.Entry(name)
		c.builders[name] = c.builder(e)
		c.accessors[name] = func() (any, error) { return c.Get(context.Background(), name) }
	}
	c.aio = &Aio{c: c}

	c.log.Debug("container constructed", logger.Fields(
		logger.FieldCount, len(names),
		"eager", len(plan.Constants),
		"thread_safe", c.table.Config().ThreadSafe,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return c, nil
}

// builder evaluates the value or arguments of e depth-first, resolving
// every reference through the container, and instantiates e.
func (c *Container) builder(e *spec.Entry) resolve.Builder {
	return func(ctx context.Context) (any, error) {
		lookup := func(ref string) (any, error) {
			if !c.plan.Has(ref) {
				return nil, werrors.UnknownReference(ref, e.Name)
			}
			return c.Get(ctx, ref)
		}
		if !e.IsComponent() {
			return spec.Eval(e.Value, lookup)
		}
		pos, kw, err := spec.EvalArgs(e.Args, lookup)
		if err != nil {
			return nil, err
		}
		return resolve.Construct(ctx, c.symbols, e.Locator, e.Factory, symbols.Args{Positional: pos, Keyword: kw})
	}
}

// Get returns the instance of name, instantiating it and its dependencies
// on first access.
func (c *Container) Get(ctx context.Context, name string) (any, error) {
	build, ok := c.builders[name]
	if !ok {
		return nil, werrors.UnknownEntry(name)
	}
	return c.table.Resolve(ctx, name, build)
}

// Accessor returns the zero-argument accessor of name.
func (c *Container) Accessor(name string) (Accessor, error) {
	a, ok := c.accessors[name]
	if !ok {
		return nil, werrors.UnknownEntry(name)
	}
	return a, nil
}

// Aio returns the asynchronous accessors.
func (c *Container) Aio() *Aio { return c.aio }

// Names returns every entry name in specification order.
func (c *Container) Names() []string { return c.plan.Names() }

// Has reports whether name is defined.
func (c *Container) Has(name string) bool { return c.plan.Has(name) }

// Plan returns the validated plan of the container.
func (c *Container) Plan() *dag.Plan { return c.plan }

// ID returns the instance id used in logs and spans.
func (c *Container) ID() string { return c.id }

// Resolved reports whether name holds an instance.
func (c *Container) Resolved(name string) bool { return c.table.Resolved(name) }

// Close closes every instance implementing io.Closer and joins the errors.
func (c *Container) Close() error {
	err := c.table.Close()
	if err != nil {
		c.log.Warn("closing container", logger.MergeWithError(nil, err))
	}
	return err
}
