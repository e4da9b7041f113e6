package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/synthwave84/themegen/internal/palette"
	"github.com/synthwave84/themegen/internal/theme"
)

func newGenerateCmd(paths func() sourcePaths) *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the theme document from source",
		Long: `Generate derives every variant from the palette source, renders the theme
template, and writes the generated theme document.

The write is atomic: either the complete document lands or nothing changes.
Any derivation or rendering error aborts before the artifact is touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := regenerate(paths())
			if err != nil {
				return err
			}

			if checkOnly {
				cmd.Println("Rendered all variants without errors")
				return nil
			}

			out := paths().Theme()
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := atomic.WriteFile(out, bytes.NewReader(theme.Encode(doc))); err != nil {
				return fmt.Errorf("failed to write theme document: %w", err)
			}

			cmd.Printf("Generated %s\n", out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "render in memory without writing the artifact")
	return cmd
}

// regenerate runs the full pipeline in memory: load palette and template,
// derive every variant, render the document.
func regenerate(paths sourcePaths) (*theme.Object, error) {
	logger.Debug("loading palette source", "path", paths.Palette())
	p, err := palette.LoadFile(paths.Palette())
	if err != nil {
		return nil, err
	}

	logger.Debug("loading template source", "path", paths.Template())
	tmpl, err := theme.LoadTemplateFile(paths.Template())
	if err != nil {
		return nil, err
	}

	logger.Debug("rendering variants", "count", len(palette.Specs))
	return theme.RenderTheme(tmpl, p)
}
