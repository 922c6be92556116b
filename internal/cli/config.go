package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/calendar/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(newConfigInitCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))

	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration to the --config path.

An existing file is left alone unless --force is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(rootOpts, force, cmd)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func runConfigInit(opts *RootOptions, force bool, cmd *cobra.Command) error {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return NewExitError(ExitCommandError, fmt.Sprintf("config file already exists: %s (use --force to overwrite)", path))
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return WrapExitError(ExitCommandError, "failed to check config file", err)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return WrapExitError(ExitCommandError, "failed to write config", err)
	}

	out := newFormatter(cmd, opts)
	if opts.Format == "json" {
		return out.Success(map[string]string{"path": path})
	}
	fmt.Fprintf(out.Writer, "Wrote %s\n", path)
	return nil
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}

			out := newFormatter(cmd, rootOpts)
			if rootOpts.Format == "json" {
				return out.Success(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Writer.Write(data)
			return err
		},
	}
}
