package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/compozy/modver/internal/config"
	"github.com/compozy/modver/internal/domain"
	"github.com/compozy/modver/internal/logger"
	"github.com/compozy/modver/internal/repository"
	"github.com/compozy/modver/internal/usecase"
)

// BuildConfig selects which artifacts a build run produces.
type BuildConfig struct {
	CIOutput       bool
	WriteVersion   bool
	WriteBuildInfo bool
	Stamp          bool
}

// BuildResult is everything a build run resolved and wrote.
type BuildResult struct {
	Source    domain.Source
	MCVersion string
	Version   string
	BuildInfo *domain.BuildInfo
	Stamped   []string
}

// BuildOrchestrator resolves the project version and writes the requested artifacts.
type BuildOrchestrator struct {
	cfg          *config.Config
	gitRepo      repository.GitRepository
	artifactRepo repository.ArtifactRepository
	logger       logger.Logger
	out          io.Writer
}

// NewBuildOrchestrator creates a new build orchestrator. Status and CI lines go to out.
func NewBuildOrchestrator(
	cfg *config.Config,
	gitRepo repository.GitRepository,
	artifactRepo repository.ArtifactRepository,
	log logger.Logger,
	out io.Writer,
) *BuildOrchestrator {
	return &BuildOrchestrator{
		cfg:          cfg,
		gitRepo:      gitRepo,
		artifactRepo: artifactRepo,
		logger:       log,
		out:          out,
	}
}

// Resolve detects the source control state and resolves the version. It writes nothing.
func (o *BuildOrchestrator) Resolve(ctx context.Context) (*BuildResult, error) {
	detect := &usecase.DetectSourceUseCase{
		GitRepo:        o.gitRepo,
		Logger:         o.logger,
		FetchTags:      o.cfg.FetchTags,
		BranchOverride: o.cfg.Branch,
	}
	src, err := detect.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to detect source: %w", err)
	}
	mcVersion := o.cfg.EffectiveMCVersion()
	resolve := &usecase.ResolveVersionUseCase{Logger: o.logger}
	version := resolve.Execute(ctx, usecase.ResolveInput{
		Describe:           src.Describe,
		Branch:             src.Branch,
		MCVersion:          mcVersion,
		VersionSuffix:      o.cfg.VersionSuffix,
		VersionMinorFreeze: o.cfg.VersionMinorFreeze,
	})
	return &BuildResult{Source: src, MCVersion: mcVersion, Version: version}, nil
}

// Execute resolves the version and writes the artifacts selected in cfg.
func (o *BuildOrchestrator) Execute(ctx context.Context, cfg BuildConfig) (*BuildResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()
	// Step 1: Resolve version
	result, err := o.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateVersion(result.Version); err != nil {
		return nil, fmt.Errorf("invalid version: %w", err)
	}
	o.printCIOutput(cfg.CIOutput, "version=%s\n", result.Version)
	o.printCIOutput(cfg.CIOutput, "mc_version=%s\n", result.MCVersion)
	o.printCIOutput(cfg.CIOutput, "placeholder=%t\n", result.Source.Placeholder)
	// Step 2: Version file and build record
	if cfg.WriteVersion {
		if err := o.writeVersionFile(ctx, result.Version); err != nil {
			return result, err
		}
	}
	if cfg.WriteBuildInfo {
		info, err := o.writeBuildInfo(ctx, result)
		if err != nil {
			return result, err
		}
		result.BuildInfo = info
		o.printCIOutput(cfg.CIOutput, "build_id=%s\n", info.BuildID)
	}
	// Step 3: Stamped resources
	if cfg.Stamp {
		stamped, err := o.stampResources(ctx, result)
		result.Stamped = stamped
		if err != nil {
			return result, err
		}
	}
	o.printStatus(cfg.CIOutput, fmt.Sprintf("✅ Version %s", result.Version))
	return result, nil
}

func (o *BuildOrchestrator) writeVersionFile(ctx context.Context, version string) error {
	uc := &usecase.WriteVersionFileUseCase{
		ArtifactRepo: o.artifactRepo,
		Logger:       o.logger,
	}
	return uc.Execute(ctx, o.cfg.ProjectPath(o.cfg.VersionFile), version)
}

func (o *BuildOrchestrator) writeBuildInfo(ctx context.Context, result *BuildResult) (*domain.BuildInfo, error) {
	uc := &usecase.WriteBuildInfoUseCase{
		ArtifactRepo: o.artifactRepo,
		Logger:       o.logger,
	}
	return uc.Execute(ctx, usecase.BuildInfoInput{
		Path:      o.cfg.ProjectPath(o.cfg.BuildInfoFile),
		Version:   result.Version,
		MCVersion: result.MCVersion,
		Source:    result.Source,
	})
}

func (o *BuildOrchestrator) stampResources(ctx context.Context, result *BuildResult) ([]string, error) {
	uc := &usecase.StampResourcesUseCase{
		ArtifactRepo: o.artifactRepo,
		Logger:       o.logger,
	}
	return uc.Execute(ctx, usecase.StampInput{
		ProjectDir:   o.cfg.ProjectDir,
		OutputDir:    o.cfg.OutputDir,
		ModInfoFile:  o.cfg.ModInfoFile,
		ReplaceIn:    o.cfg.ReplaceIn,
		ReplaceToken: o.cfg.ReplaceToken,
		Version:      result.Version,
		MCVersion:    result.MCVersion,
	})
}

// printCIOutput prints output in CI format if enabled
func (o *BuildOrchestrator) printCIOutput(ciOutput bool, format string, args ...any) {
	if ciOutput {
		fmt.Fprintf(o.out, format, args...)
	}
}

// printStatus prints status messages when not in CI mode
func (o *BuildOrchestrator) printStatus(ciOutput bool, message string) {
	if !ciOutput {
		fmt.Fprintln(o.out, message)
	}
}
