package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kbukum/wirekit/version"
)

type versionCmd struct {
	full   bool
	asJSON bool
}

func (c *versionCmd) registerFlags() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the wirekit version",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&c.full, "full", false, "include build time and Go version")
	cmd.Flags().BoolVar(&c.asJSON, "json", false, "print the build information as JSON")
	return cmd
}

func (c *versionCmd) run(_ *cli, cmd *cobra.Command, _ []string) error {
	info := version.Get()
	out := cmd.OutOrStdout()
	switch {
	case c.asJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case c.full:
		_, err := fmt.Fprintln(out, info.Full())
		return err
	}
	_, err := fmt.Fprintln(out, info.String())
	return err
}
