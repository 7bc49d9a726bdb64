package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/compozy/modver/internal/domain"
	"github.com/compozy/modver/internal/logger"
)

// UnknownVersion replaces the numeric part of the version when describe output can't be parsed.
const UnknownVersion = "UNKNOWN_VERSION"

// ResolveInput holds everything a version string is computed from.
type ResolveInput struct {
	Describe           string
	Branch             domain.Branch
	MCVersion          string
	VersionSuffix      string
	VersionMinorFreeze string
}

// ResolveVersionUseCase computes Forge-convention version strings:
// MCVERSION-MAJORMOD.MAJORAPI.MINOR.PATCH followed by the configured
// suffix and, for non-release branches, a branch suffix.
type ResolveVersionUseCase struct {
	Logger logger.Logger
}

// Execute runs the use case. It never fails: malformed describe output
// resolves to an UNKNOWN_VERSION string and is logged.
func (uc *ResolveVersionUseCase) Execute(_ context.Context, in ResolveInput) string {
	if branchMC, ok := in.Branch.MCVersion(); ok && branchMC != in.MCVersion {
		uc.Logger.Warnw("Branch version different than project MC version",
			"mc_version", in.MCVersion,
			"branch", string(in.Branch),
			"branch_version", branchMC,
		)
	}
	branchSuffix := in.Branch.Suffix()
	describe := domain.ParseDescribe(in.Describe)
	switch describe.Kind {
	case domain.DescribeTag:
		return fmt.Sprintf("%s-%s.0.0%s%s", in.MCVersion, describe.Base, in.VersionSuffix, branchSuffix)
	case domain.DescribeCommits:
		minor, patch := uc.minorAndPatch(describe.CommitsSinceTag, in.VersionMinorFreeze)
		return fmt.Sprintf("%s-%s.%d.%d%s%s", in.MCVersion, describe.Base, minor, patch, in.VersionSuffix, branchSuffix)
	default:
		uc.Logger.Errorw("Git describe information in unknown/incorrect format", "describe", in.Describe)
		return fmt.Sprintf("%s-%s%s%s", in.MCVersion, UnknownVersion, in.VersionSuffix, branchSuffix)
	}
}

// minorAndPatch splits the commit count into minor and patch components.
// Without a freeze every commit bumps minor. With a freeze minor is pinned
// and the commits past it go to patch.
func (uc *ResolveVersionUseCase) minorAndPatch(commitsSinceTag int, minorFreeze string) (int, int) {
	freeze := uc.parseMinorFreeze(minorFreeze)
	if freeze < 0 {
		return commitsSinceTag, 0
	}
	return freeze, commitsSinceTag - freeze
}

func (uc *ResolveVersionUseCase) parseMinorFreeze(minorFreeze string) int {
	if minorFreeze == "" {
		return -1
	}
	freeze, err := strconv.Atoi(minorFreeze)
	if err != nil {
		uc.Logger.Errorw("Ignoring invalid minor version freeze", "version_minor_freeze", minorFreeze, "error", err)
		return -1
	}
	return freeze
}
