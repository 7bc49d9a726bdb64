package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/modver/internal/logger"
	"github.com/compozy/modver/internal/repository"
)

// WriteVersionFileUseCase writes the VERSION file consumed by release scripts.
type WriteVersionFileUseCase struct {
	ArtifactRepo repository.ArtifactRepository
	Logger       logger.Logger
}

// Execute writes "VERSION=<version>" to path.
func (uc *WriteVersionFileUseCase) Execute(ctx context.Context, path, version string) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if err := uc.ArtifactRepo.WriteFile(ctx, path, []byte("VERSION="+version)); err != nil {
		return fmt.Errorf("failed to write version file: %w", err)
	}
	uc.Logger.Infow("Wrote version file", "path", path, "version", version)
	return nil
}
