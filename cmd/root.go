package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	projectDir string
	logLevel   string
	app        = &container{}
)

var rootCmd = &cobra.Command{
	Use:   "modver",
	Short: "Forge-convention version strings from git describe",
	Long: `modver resolves MCVERSION-MAJORMOD.MAJORAPI.MINOR.PATCH versions for mod
projects from annotated git tags, the current branch and gradle.properties,
and writes the version into build artifacts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if !needsProject(cmd) {
			return nil
		}
		return app.init(projectDir, logLevel)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		app.close()
	},
}

func init() {
	defaultDir := os.Getenv("MODVER_PROJECT_DIR")
	if defaultDir == "" {
		defaultDir = "."
	}
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", defaultDir, "Project directory holding gradle.properties")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

// needsProject reports whether cmd resolves versions. Help and shell completion don't.
func needsProject(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func Execute() error {
	return rootCmd.Execute()
}
