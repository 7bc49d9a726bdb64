// Package version holds modver's own build metadata, set with -ldflags -X.
package version

import (
	"fmt"
	"strings"
)

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Info is the build metadata with blank values replaced by defaults.
type Info struct {
	Version    string
	CommitHash string
	BuildDate  string
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:    valueOr(Version, "dev"),
		CommitHash: valueOr(CommitHash, "unknown"),
		BuildDate:  valueOr(BuildDate, "unknown"),
	}
}

// Summary returns a human-friendly version string for CLI output.
func Summary() string {
	info := Get()
	commit := info.CommitHash
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("modver %s (%s, built %s)", info.Version, commit, info.BuildDate)
}

func valueOr(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
