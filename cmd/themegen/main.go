// Themegen - Synthwave '84 theme management
//
// Themegen derives, renders, and validates the Synthwave '84 editor theme
// variants from a single declarative palette source.
package main

import (
	"os"

	"github.com/synthwave84/themegen/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
