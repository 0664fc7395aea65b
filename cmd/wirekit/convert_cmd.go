package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/specfile"
)

type convertCmd struct {
	to     string
	output string
}

func (c *convertCmd) registerFlags() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-encode a specification in another format",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&c.to, "to", string(specfile.YAML), "target format: yaml, json, toml or ini")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *convertCmd) run(cl *cli, cmd *cobra.Command, args []string) error {
	f, err := specfile.ParseFormat(c.to)
	if err != nil {
		return err
	}
	s, err := cl.load(args[0])
	if err != nil {
		return err
	}
	data, err := specfile.Marshal(f, s)
	if err != nil {
		return err
	}
	if err := cl.write(cmd, c.output, data); err != nil {
		return err
	}
	cl.log.Debug("specification converted", logger.Fields(logger.FieldFile, args[0], logger.FieldFormat, string(f)))
	return nil
}
