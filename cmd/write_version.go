package cmd

import (
	"github.com/compozy/modver/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newWriteVersionCmd(c *container) *cobra.Command {
	var (
		ciOutput      bool
		skipBuildInfo bool
	)
	cmd := &cobra.Command{
		Use:   "write-version",
		Short: "Write the VERSION file and build record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.buildOrchestrator(cmd.OutOrStdout()).Execute(cmd.Context(), orchestrator.BuildConfig{
				CIOutput:       ciOutput,
				WriteVersion:   true,
				WriteBuildInfo: !skipBuildInfo,
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&ciOutput, "ci-output", false, "Output in CI-friendly format")
	cmd.Flags().BoolVar(&skipBuildInfo, "skip-build-info", false, "Write only the VERSION file")
	return cmd
}
