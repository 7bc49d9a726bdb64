package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/compozy/modver/internal/domain"
	"github.com/compozy/modver/internal/logger"
	"github.com/compozy/modver/internal/repository"
	"github.com/google/uuid"
)

// WriteBuildInfoUseCase records the resolved version and its inputs as JSON.
type WriteBuildInfoUseCase struct {
	ArtifactRepo repository.ArtifactRepository
	Logger       logger.Logger
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// BuildInfoInput describes one resolved build.
type BuildInfoInput struct {
	Path      string
	Version   string
	MCVersion string
	Source    domain.Source
}

// Execute writes the build record and returns it.
func (uc *WriteBuildInfoUseCase) Execute(ctx context.Context, in BuildInfoInput) (*domain.BuildInfo, error) {
	now := uc.Now
	if now == nil {
		now = time.Now
	}
	newID := uc.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	info := domain.NewBuildInfo(newID(), in.Version, in.MCVersion, in.Source, now())
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal build info: %w", err)
	}
	data = append(data, '\n')
	if err := uc.ArtifactRepo.WriteFile(ctx, in.Path, data); err != nil {
		return nil, fmt.Errorf("failed to write build info: %w", err)
	}
	uc.Logger.Infow("Wrote build info", "path", in.Path, "build_id", info.BuildID)
	return info, nil
}
