package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/modver/internal/domain"
	"github.com/compozy/modver/internal/logger"
	"github.com/compozy/modver/internal/repository"
)

// DetectSourceUseCase reads the describe string and branch a version is resolved from.
type DetectSourceUseCase struct {
	GitRepo repository.GitRepository
	Logger  logger.Logger
	// FetchTags fetches tags from origin before describing HEAD.
	FetchTags bool
	// BranchOverride replaces the detected branch, for detached CI checkouts.
	BranchOverride string
}

// Execute runs the use case. A missing repository is not an error: the
// placeholder source is returned so local builds still get a version.
func (uc *DetectSourceUseCase) Execute(ctx context.Context) (domain.Source, error) {
	if uc.FetchTags {
		if err := uc.GitRepo.FetchTags(ctx); err != nil && !errors.Is(err, repository.ErrRepositoryNotFound) {
			uc.Logger.Warnw("Could not fetch tags from origin, using local tags", "error", err)
		}
	}
	describe, err := uc.GitRepo.Describe(ctx)
	switch {
	case errors.Is(err, repository.ErrRepositoryNotFound):
		uc.Logger.Errorw("Git repository not found! Version will be incorrect!", "error", err)
		return domain.PlaceholderSource(), nil
	case errors.Is(err, repository.ErrNoTags):
		uc.Logger.Errorw("No annotated version tag found, version will be unknown", "error", err)
		describe = ""
	case err != nil:
		return domain.Source{}, fmt.Errorf("failed to describe HEAD: %w", err)
	}
	branch, err := uc.branch(ctx)
	if err != nil {
		return domain.Source{}, err
	}
	uc.Logger.Debugw("Detected source control state", "describe", describe, "branch", branch)
	return domain.Source{Describe: describe, Branch: domain.Branch(branch)}, nil
}

func (uc *DetectSourceUseCase) branch(ctx context.Context) (string, error) {
	if uc.BranchOverride != "" {
		return uc.BranchOverride, nil
	}
	branch, err := uc.GitRepo.CurrentBranch(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return branch, nil
}
