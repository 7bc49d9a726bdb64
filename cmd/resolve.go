package cmd

import (
	"fmt"

	"github.com/compozy/modver/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newResolveCmd(c *container) *cobra.Command {
	var ciOutput bool
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the project version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch := c.buildOrchestrator(cmd.OutOrStdout())
			if ciOutput {
				_, err := orch.Execute(cmd.Context(), orchestrator.BuildConfig{CIOutput: true})
				return err
			}
			result, err := orch.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ciOutput, "ci-output", false, "Output in CI-friendly format")
	return cmd
}
