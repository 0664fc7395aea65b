package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/wirekit/dag"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/observability"
)

type checkCmd struct{}

func (c *checkCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a specification and print its evaluation order",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *checkCmd) run(cl *cli, cmd *cobra.Command, args []string) error {
	ctx, span := observability.StartSpan(cmd.Context(), observability.SpanCheck)
	defer span.End()

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
	levels, err := plan.Graph.Levels()
	if err != nil {
		return err
	}
	observability.SetSpanAttribute(ctx, observability.AttrEntries, len(plan.Entries))

	out := cmd.OutOrStdout()
	eager := len(plan.Constants)
	fmt.Fprintf(out, "%s: %d entries (%d eager, %d lazy)\n", args[0], len(plan.Entries), eager, len(plan.Entries)-eager)
	for i, level := range levels {
		fmt.Fprintf(out, "level %d: %s\n", i, strings.Join(level, ", "))
	}
	for _, e := range plan.Entries {
		for _, ref := range e.Refs() {
			if !plan.Has(ref) {
				fmt.Fprintf(out, "warning: %s references unknown entry %s\n", e.Name, ref)
			}
		}
	}

	cl.log.Info("specification checked", logger.Fields(
		logger.FieldFile, args[0],
		logger.FieldCount, len(plan.Entries),
		"levels", len(levels),
	))
	return nil
}
