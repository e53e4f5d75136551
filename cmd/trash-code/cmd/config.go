package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/whit3rabbit/trash-code/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the trash-code configuration file",
		// Writing a config must not depend on loading one.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	configCmd.AddCommand(newConfigInitCmd())
	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration as YAML",
		Long: `Writes every configuration key with its default value to path
(default ./` + config.DefaultConfigFile + `). An existing file is only replaced with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.DefaultConfigFile
			if len(args) == 1 {
				target = args[0]
			}
			cmd.SilenceUsage = true

			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to replace it)", target)
			}
			return config.SaveConfig(target)
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing file")
	return initCmd
}
