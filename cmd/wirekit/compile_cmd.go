package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/wirekit/compiler"
	"github.com/kbukum/wirekit/dag"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/observability"
)

type compileCmd struct {
	async      bool
	threadSafe bool
	pkg        string
	output     string
}

func (c *compileCmd) registerFlags() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Generate a Go container package from a specification",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&c.async, "async", false, "generate asynchronous accessors")
	cmd.Flags().BoolVar(&c.threadSafe, "thread-safe", false, "enable the locking protocol")
	cmd.Flags().StringVar(&c.pkg, "package", compiler.DefaultPackage, "package name of the generated file")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// options merges the compile section of the configuration with the flags
// set on the command line.
func (c *compileCmd) options(cl *cli, cmd *cobra.Command) (compiler.Options, string) {
	cfg := cl.cfg.Compile
	o := compiler.Options{Package: cfg.Package, Async: cfg.Async, ThreadSafe: cfg.ThreadSafe}
	output := cfg.Output
	flags := cmd.Flags()
	if flags.Changed("async") {
		o.Async = c.async
	}
	if flags.Changed("thread-safe") {
		o.ThreadSafe = c.threadSafe
	}
	if flags.Changed("package") {
		o.Package = c.pkg
	}
	if flags.Changed("output") {
		output = c.output
	}
	return o, output
}

func (c *compileCmd) run(cl *cli, cmd *cobra.Command, args []string) error {
	o, output := c.options(cl, cmd)
	ctx, span := observability.StartSpan(cmd.Context(), observability.SpanCompile)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrAsync, o.Async)
	observability.SetSpanAttribute(ctx, observability.AttrLocked, o.ThreadSafe)

	s, err := cl.load(args[0])
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	plan, err := dag.FromSpec(s, cl.parserOptions()...)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	comp, err := compiler.FromPlan(plan)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	src, err := comp.Generate(o)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	if err := cl.write(cmd, output, src); err != nil {
		return err
	}

	if output != "" {
		cl.log.Info("container compiled", logger.Fields(
			logger.FieldFile, output,
			"package", o.Package,
			logger.FieldCount, len(plan.Entries),
		))
	}
	return nil
}
