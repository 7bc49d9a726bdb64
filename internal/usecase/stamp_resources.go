package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/compozy/modver/internal/logger"
	"github.com/compozy/modver/internal/repository"
)

// StampInput lists the files to stamp with a resolved version.
type StampInput struct {
	ProjectDir string
	// OutputDir is relative to ProjectDir. Stamped copies keep their project-relative path below it.
	OutputDir string
	// ModInfoFile gets ${version} and ${mcversion} expanded. Empty skips it.
	ModInfoFile string
	// ReplaceIn files get every ReplaceToken replaced with the version.
	ReplaceIn    []string
	ReplaceToken string
	Version      string
	MCVersion    string
}

// StampResourcesUseCase writes version-stamped copies of project files.
// Source files are never modified.
type StampResourcesUseCase struct {
	ArtifactRepo repository.ArtifactRepository
	Logger       logger.Logger
}

// Execute stamps every configured file and returns the written paths.
func (uc *StampResourcesUseCase) Execute(ctx context.Context, in StampInput) ([]string, error) {
	if in.Version == "" {
		return nil, fmt.Errorf("version cannot be empty")
	}
	var written []string
	if in.ModInfoFile != "" {
		expander := strings.NewReplacer("${version}", in.Version, "${mcversion}", in.MCVersion)
		path, err := uc.stamp(ctx, in, in.ModInfoFile, expander)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if len(in.ReplaceIn) > 0 {
		if in.ReplaceToken == "" {
			return written, fmt.Errorf("replace token cannot be empty")
		}
		replacer := strings.NewReplacer(in.ReplaceToken, in.Version)
		for _, rel := range in.ReplaceIn {
			path, err := uc.stamp(ctx, in, rel, replacer)
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	return written, nil
}

func (uc *StampResourcesUseCase) stamp(
	ctx context.Context,
	in StampInput,
	rel string,
	replacer *strings.Replacer,
) (string, error) {
	clean := filepath.Clean(rel)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s must be a path inside the project", rel)
	}
	src := filepath.Join(in.ProjectDir, clean)
	data, err := uc.ArtifactRepo.ReadFile(ctx, src)
	if err != nil {
		return "", fmt.Errorf("failed to stamp %s: %w", rel, err)
	}
	dst := filepath.Join(in.ProjectDir, in.OutputDir, clean)
	if err := uc.ArtifactRepo.WriteFile(ctx, dst, []byte(replacer.Replace(string(data)))); err != nil {
		return "", fmt.Errorf("failed to stamp %s: %w", rel, err)
	}
	uc.Logger.Debugw("Stamped file", "source", src, "output", dst)
	return dst, nil
}
