// Package cli provides the command-line interface for themegen.
package cli

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/synthwave84/themegen/internal/version"
)

var logger = hclog.New(&hclog.LoggerOptions{
	Name:   "themegen",
	Level:  hclog.Warn,
	Output: os.Stderr,
})

// sourcePaths resolves the conventional file layout under the source root.
type sourcePaths struct {
	root string
}

// Palette returns the palette source document path.
func (s sourcePaths) Palette() string {
	return filepath.Join(s.root, "palette.json")
}

// Template returns the template source document path.
func (s sourcePaths) Template() string {
	return filepath.Join(s.root, "src", "base.json")
}

// Theme returns the generated theme artifact path.
func (s sourcePaths) Theme() string {
	return filepath.Join(s.root, "themes", "synthwave84.json")
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		sourceRoot string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "themegen",
		Short: "Synthwave '84 theme management",
		Long: `Themegen builds, checks, and audits the Synthwave '84 editor theme from its
declarative palette source.

The classic, soft, and high-contrast variants are derived from one base
palette: each variant shifts lightness uniformly and then repairs any colour
that falls below its WCAG contrast floor. The generated theme document is a
build artifact; edit palette.json and src/base.json, never the output.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(hclog.Debug)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&sourceRoot, "source", "s", ".", "theme source root (containing palette.json, src/, themes/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	paths := func() sourcePaths { return sourcePaths{root: sourceRoot} }

	rootCmd.AddCommand(newGenerateCmd(paths))
	rootCmd.AddCommand(newValidateCmd(paths))
	rootCmd.AddCommand(newCheckCmd(paths))
	rootCmd.AddCommand(newDeriveCmd(paths))
	rootCmd.AddCommand(newCoverageCmd(paths))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.String())
		},
	}
}
