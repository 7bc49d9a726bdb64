package domain

import (
	"regexp"
	"strings"
)

const (
	// MasterBranch is the main release branch.
	MasterBranch = "master"
	// MCBranchPrefix marks per-Minecraft-version release branches, e.g. MC_1.12.2.
	MCBranchPrefix = "MC_"
)

var branchUnsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Branch is the name of the branch a build is made from.
type Branch string

// IsRelease reports whether builds from this branch get no branch suffix.
func (b Branch) IsRelease() bool {
	return b == MasterBranch || strings.HasPrefix(string(b), MCBranchPrefix)
}

// Suffix returns the string appended to versions built from this branch.
// Release branches get none; anything else gets "-<name>" with every
// character outside [a-zA-Z0-9.-] replaced by "_".
func (b Branch) Suffix() string {
	if b.IsRelease() {
		return ""
	}
	return "-" + branchUnsafeChars.ReplaceAllString(string(b), "_")
}

// MCVersion returns the Minecraft version encoded in an MC_ branch name.
func (b Branch) MCVersion() (string, bool) {
	return strings.CutPrefix(string(b), MCBranchPrefix)
}
