/*
trash-code (Entry Point)

trash-code turns readable JavaScript into hard-to-read but equivalent
JavaScript: identifiers are renamed, string literals hex-escaped, dead code
is injected and comments are stripped.
*/
package main

import (
	"github.com/whit3rabbit/trash-code/cmd/trash-code/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
