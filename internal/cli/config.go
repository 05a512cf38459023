package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themegroup/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Manage the themegroup configuration file.",
	}

	cmd.AddCommand(newConfigInitCmd(global))

	return cmd
}

// newConfigInitCmd creates the config init command.
func newConfigInitCmd(global *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to the --config path, or to
$XDG_CONFIG_HOME/themegroup/config.toml when --config is not given.

An existing file is left alone unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			if path == "" {
				return errors.New("cannot determine config path, set --config")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if !global.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config file: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
