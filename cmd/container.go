package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/compozy/modver/internal/config"
	"github.com/compozy/modver/internal/logger"
	"github.com/compozy/modver/internal/orchestrator"
	"github.com/compozy/modver/internal/repository"
	"github.com/compozy/modver/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg *config.Config
	log *zap.SugaredLogger

	fsRepo       repository.FileSystemRepository
	gitRepo      repository.GitRepository
	artifactRepo repository.ArtifactRepository
}

// init loads configuration for dir and builds every dependency.
func (c *container) init(dir, levelOverride string) error {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return err
	}
	if levelOverride != "" {
		if err := config.ValidateLogLevel(levelOverride); err != nil {
			return err
		}
		cfg.LogLevel = levelOverride
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	gitRepo, err := newGitRepository(cfg)
	if err != nil {
		_ = log.Sync()
		return err
	}
	c.cfg = cfg
	c.log = log
	c.fsRepo = fsRepo
	c.gitRepo = gitRepo
	c.artifactRepo = repository.NewArtifactRepository(fsRepo, cfg.LockDir)
	return nil
}

// newGitRepository picks the describe provider. A missing repository is not
// fatal: the unavailable provider makes the build fall back to a placeholder version.
func newGitRepository(cfg *config.Config) (repository.GitRepository, error) {
	if cfg.GitCLI {
		return service.NewGitCLIService(cfg.ProjectDir), nil
	}
	gitRepo, err := repository.NewGitRepository(cfg.ProjectDir)
	if errors.Is(err, repository.ErrRepositoryNotFound) {
		return repository.NewUnavailableGitRepository(cfg.ProjectDir), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return gitRepo, nil
}

func (c *container) buildOrchestrator(out io.Writer) *orchestrator.BuildOrchestrator {
	return orchestrator.NewBuildOrchestrator(c.cfg, c.gitRepo, c.artifactRepo, c.log, out)
}

// close flushes buffered log entries.
func (c *container) close() {
	if c.log != nil {
		_ = c.log.Sync()
	}
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	rootCmd.AddCommand(
		newResolveCmd(app),
		newDescribeCmd(app),
		newWriteVersionCmd(app),
		newStampCmd(app),
		newVersionCmd(),
	)
	return nil
}
