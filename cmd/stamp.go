package cmd

import (
	"fmt"

	"github.com/compozy/modver/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newStampCmd(c *container) *cobra.Command {
	var ciOutput bool
	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Write version-stamped copies of mod info and source files",
		Long: `Write version-stamped copies of project files below the output directory.

${version} and ${mcversion} are expanded in the mod info file. The replace
token (default @@VERSION@@) is replaced in every replace_in file. Source files
are never modified.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.buildOrchestrator(cmd.OutOrStdout()).Execute(cmd.Context(), orchestrator.BuildConfig{
				CIOutput: ciOutput,
				Stamp:    true,
			})
			if err != nil {
				return err
			}
			if !ciOutput {
				for _, path := range result.Stamped {
					fmt.Fprintf(cmd.OutOrStdout(), "stamped %s\n", path)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ciOutput, "ci-output", false, "Output in CI-friendly format")
	return cmd
}
