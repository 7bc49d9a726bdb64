package cmd

import (
	"fmt"

	"github.com/compozy/modver/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print modver's own build information",
		// no project needed
		PersistentPreRun: func(_ *cobra.Command, _ []string) {},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version.Summary())
				return nil
			}
			info := version.Get()
			fmt.Fprintf(out, "Version:\t%s\n", info.Version)
			fmt.Fprintf(out, "Commit:\t%s\n", info.CommitHash)
			fmt.Fprintf(out, "Built:\t%s\n", info.BuildDate)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print a single line")
	return cmd
}
