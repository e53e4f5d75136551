package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const exampleText = `
📖 Usage examples:

Basic usage:
  trash-code input.js

Choose the output file:
  trash-code input.js -o output.js

Disable some passes:
  trash-code input.js --no-variables --no-strings

Several files, four at a time:
  trash-code src/*.js -j 4

Keep the identifier map and look a name up later:
  trash-code src/main.js -o dist/main.trash.js --emit-map main.map.yaml
  trash-code whatis bd41 --map main.map.yaml

Write a starter configuration:
  trash-code config init
`

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Show usage examples",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), exampleText)
		},
	}
}
