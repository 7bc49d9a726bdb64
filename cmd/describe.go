package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newDescribeCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Show the inputs a version is resolved from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.buildOrchestrator(cmd.OutOrStdout()).Resolve(cmd.Context())
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Input", "Value"})
			t.AppendRows([]table.Row{
				{"Describe", result.Source.Describe},
				{"Branch", string(result.Source.Branch)},
				{"Branch suffix", result.Source.Branch.Suffix()},
				{"MC version", result.MCVersion},
				{"Version suffix", c.cfg.VersionSuffix},
				{"Minor freeze", c.cfg.VersionMinorFreeze},
				{"Placeholder", result.Source.Placeholder},
			})
			t.AppendFooter(table.Row{"Version", result.Version})
			t.SetStyle(table.StyleRounded)
			// keep the version's case
			t.Style().Format.Footer = text.FormatDefault
			t.Render()
			return nil
		},
	}
}
