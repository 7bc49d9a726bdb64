package domain

import (
	"time"
)

// BuildInfo records how a version string was produced for a single build.
type BuildInfo struct {
	BuildID     string    `json:"build_id"`
	Version     string    `json:"version"`
	MCVersion   string    `json:"mc_version"`
	Branch      string    `json:"branch"`
	Describe    string    `json:"describe"`
	Placeholder bool      `json:"placeholder,omitempty"`
	BuiltAt     time.Time `json:"built_at"`
}

// NewBuildInfo creates a build record for a resolved version.
func NewBuildInfo(buildID, version, mcVersion string, src Source, builtAt time.Time) *BuildInfo {
	return &BuildInfo{
		BuildID:     buildID,
		Version:     version,
		MCVersion:   mcVersion,
		Branch:      string(src.Branch),
		Describe:    src.Describe,
		Placeholder: src.Placeholder,
		BuiltAt:     builtAt.UTC(),
	}
}
