package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synthwave84/themegen/internal/theme"
)

func newValidateCmd(paths func() sourcePaths) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the generated theme for structure and accessibility",
		Long: `Validate loads the generated theme document and runs every check: required
structure, colour literal format, WCAG contrast floors, player colour count,
and cross-variant consistency.

All findings are collected and reported in one run. Warnings do not fail the
run; any error does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(paths().Theme())
			if err != nil {
				return fmt.Errorf("failed to read theme document: %w", err)
			}
			doc, err := theme.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", paths().Theme(), err)
			}

			findings := theme.Validate(doc)

			var errors, warnings int
			for _, f := range findings {
				switch f.Severity {
				case theme.SeverityError:
					errors++
					cmd.Printf("FAIL: %s\n", f)
				case theme.SeverityWarning:
					warnings++
					cmd.Printf("WARN: %s\n", f)
				}
			}

			if errors > 0 {
				return fmt.Errorf("validation failed: %d errors, %d warnings", errors, warnings)
			}
			if warnings > 0 {
				cmd.Printf("OK: validation passed with %d warnings\n", warnings)
			} else {
				cmd.Println("OK: validation passed")
			}
			return nil
		},
	}
}
