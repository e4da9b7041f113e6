package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synthwave84/themegen/internal/theme"
)

func newCheckCmd(paths func() sourcePaths) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the generated theme matches its source",
		Long: `Check regenerates the theme in memory from the current palette and template
and compares it structurally against the committed theme document.

Every difference is reported with its document path. Any drift means the
source changed without regeneration (or the artifact was hand-edited) and
fails the run; this is the CI gate against silent divergence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(paths().Theme())
			if err != nil {
				return fmt.Errorf("failed to read theme document: %w", err)
			}
			current, err := theme.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", paths().Theme(), err)
			}

			regenerated, err := regenerate(paths())
			if err != nil {
				return err
			}

			drifts := theme.CompareDocuments(current, regenerated)
			if len(drifts) == 0 {
				cmd.Println("OK: theme matches source")
				return nil
			}

			for _, d := range drifts {
				cmd.Printf("FAIL: %s\n", d)
			}
			cmd.Println("Run 'themegen generate' to regenerate")
			return fmt.Errorf("theme drifted from source: %d differences", len(drifts))
		},
	}
}
