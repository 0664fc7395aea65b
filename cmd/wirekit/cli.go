package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/wirekit/config"
	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/observability"
	"github.com/kbukum/wirekit/spec"
	"github.com/kbukum/wirekit/specfile"
)

const shutdownTimeout = 5 * time.Second

type cli struct {
	root *cobra.Command
	out  io.Writer

	configFile string
	envFile    string

	cfg      *config.Config
	log      *logger.Logger
	shutdown observability.ShutdownFunc
}

func newCLI(out io.Writer) *cli {
	c := &cli{out: out}
	c.root = &cobra.Command{
		Use:               "wirekit",
		Short:             "wirekit checks and compiles object wiring specifications",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.close(cmd.Context())
		},
	}
	c.root.SetOut(out)
	c.root.PersistentFlags().StringVar(&c.configFile, "config", "", "configuration file (default ./wirekit.yml)")
	c.root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file loaded before the configuration (default ./.env.wirekit)")

	c.addCmd(&checkCmd{})
	c.addCmd(&compileCmd{})
	c.addCmd(&convertCmd{})
	c.addCmd(&versionCmd{})
	return c
}

func (c *cli) Exec() error {
	return c.root.Execute()
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	var opts []config.LoaderOption
	if c.configFile != "" {
		opts = append(opts, config.WithConfigFile(c.configFile))
	}
	if c.envFile != "" {
		opts = append(opts, config.WithEnvFile(c.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger.Init(cfg.Log)
	c.log = logger.Get("cli")

	c.shutdown, err = observability.Init(cmd.Context(), cfg.Telemetry)
	if err != nil {
		return err
	}
	if cfg.Telemetry.Endpoint != "" {
		c.log.Debug("telemetry enabled", logger.Fields("endpoint", cfg.Telemetry.Endpoint))
	}
	return nil
}

func (c *cli) close(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return c.shutdown(ctx)
}

// parserOptions returns the parser options selected by the configuration.
func (c *cli) parserOptions() []spec.Option {
	d := c.cfg.Container.Delimiters
	return []spec.Option{spec.WithDelimiters(d.Open, d.Close)}
}

// load reads the specification file at path.
func (c *cli) load(path string) (spec.Spec, error) {
	s, err := specfile.Load(path)
	if err != nil {
		c.log.Error("loading specification failed", logger.Fields(logger.FieldFile, path, logger.FieldError, err.Error()))
		return nil, err
	}
	return s, nil
}

// write sends data to path, or to the command output when path is empty.
func (c *cli) write(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *cli) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.root.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *cli, cmd *cobra.Command, args []string) error
}
