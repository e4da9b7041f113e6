package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synthwave84/themegen/internal/theme"
)

func newCoverageCmd(paths func() sourcePaths) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Check editor token coverage",
		Long: `Coverage compares the syntax tokens mapped by the generated theme against
the core token set the editor's highlighter consumes.

Core tokens with no mapping fail the run. Mapped tokens outside the core set
are reported as language-specific extras; the editor may simply be newer than
the reference list, so they only warn.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(paths().Theme())
			if err != nil {
				return fmt.Errorf("failed to read theme document: %w", err)
			}
			doc, err := theme.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", paths().Theme(), err)
			}

			cov, err := theme.DocumentCoverage(doc)
			if err != nil {
				return err
			}

			cmd.Println("Token coverage")
			cmd.Println("========================================")
			cmd.Printf("Core tokens:       %d/%d covered\n", len(cov.Covered), len(theme.CoreTokens))
			cmd.Printf("Language-specific: %d extra tokens\n", len(cov.Extra))

			if !cov.Complete() {
				cmd.Println("\nMissing core tokens:")
				for _, tok := range cov.Missing {
					cmd.Printf("  - %s\n", tok)
				}
				return fmt.Errorf("coverage incomplete: %d core tokens unmapped", len(cov.Missing))
			}

			cmd.Println("\nAll core tokens covered")
			return nil
		},
	}
}
