package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/synthwave84/themegen/internal/palette"
	"github.com/synthwave84/themegen/internal/theme"
)

func newDeriveCmd(paths func() sourcePaths) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Compare manual variant colours against derived ones",
		Long: `Derive computes what every variant syntax colour would be if derived purely
from the base palette (lightness shift plus contrast repair) and compares it
against the manually curated override, with WCAG contrast ratios for both.

With --apply, the derived colours are written back into the palette source's
variant override sets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := palette.LoadFile(paths().Palette())
			if err != nil {
				return err
			}

			rows, err := palette.Report(p)
			if err != nil {
				return err
			}

			table := NewTable("Token", "Variant", "Manual", "Derived", "Diff", "Contrast")
			for _, row := range rows {
				diff := "same"
				if !row.Matches() {
					diff = "DIFF"
				}
				table.AddRow(
					row.Token,
					row.Variant,
					swatch(row.Manual.Hex())+row.Manual.Hex(),
					swatch(row.Derived.Hex())+row.Derived.Hex(),
					diff,
					fmt.Sprintf("%.1f/%.1f", row.ManualRatio, row.DerivedRatio),
				)
			}
			cmd.Print(table.Render())

			if !apply {
				cmd.Println("\nUse '--apply' to update the palette source with derived colours")
				return nil
			}

			if err := applyDerived(paths().Palette(), rows); err != nil {
				return err
			}
			cmd.Printf("Updated %s\n", paths().Palette())
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "write derived colours back into the palette source")
	return cmd
}

// applyDerived rewrites the palette source with the derived colours merged
// into the variant override sets, preserving the document's key order.
func applyDerived(path string, rows []palette.ReportRow) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read palette source: %w", err)
	}
	doc, err := theme.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	variants := doc.GetObject("variants")
	if variants == nil {
		return fmt.Errorf("%s: missing variants section", path)
	}

	for _, row := range rows {
		overrides := variants.GetObject(row.Variant)
		if overrides == nil {
			overrides = theme.NewObject()
			variants.Set(row.Variant, overrides)
		}
		overrides.Set("syntax."+row.Token, row.Derived.Hex())
	}

	logger.Debug("writing derived colours", "path", path, "rows", len(rows))
	if err := atomic.WriteFile(path, bytes.NewReader(theme.Encode(doc))); err != nil {
		return fmt.Errorf("failed to write palette source: %w", err)
	}
	return nil
}

// swatch renders a two-cell colour block ahead of a hex value. Lipgloss
// degrades it to nothing on dumb terminals.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " "
}
