package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/whit3rabbit/trash-code/internal/scrambler"
)

func newWhatisCmd() *cobra.Command {
	var mapPath string

	whatisCmd := &cobra.Command{
		Use:   "whatis <scrambled_name>",
		Short: "Looks up the original name for a given scrambled name",
		Long: `Loads an identifier map written by a previous run with --emit-map and
prints the original identifier behind the provided scrambled name.

You must specify the map file using --map (-m).`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if mapPath == "" {
				return fmt.Errorf("--map (-m) flag is required")
			}
			info, err := os.Stat(mapPath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("identifier map '%s' not found", mapPath)
				}
				return fmt.Errorf("error checking identifier map '%s': %w", mapPath, err)
			}
			if info.IsDir() {
				return fmt.Errorf("identifier map path '%s' is a directory", mapPath)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scrambledName := args[0]
			cmd.SilenceUsage = true

			mapFile, err := scrambler.LoadMap(mapPath)
			if err != nil {
				return err
			}

			originalName, err := scrambler.Unscramble(mapFile.Identifiers, scrambledName)
			if err != nil {
				return err
			}

			if mapFile.Source != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Found: '%s' (Source: %s)\n", originalName, mapFile.Source)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Found: '%s'\n", originalName)
			}
			return nil
		},
	}

	whatisCmd.Flags().StringVarP(&mapPath, "map", "m", "", "Identifier map written by --emit-map (required)")
	return whatisCmd
}
