package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/compozy/modver/internal/repository"
)

// gitCLIService answers GitRepository queries by running the git executable.
// Unlike the go-git provider its describe output is git's own.
type gitCLIService struct {
	dir          string
	timeout      time.Duration
	fetchTimeout time.Duration
}

// NewGitCLIService creates a GitRepository backed by the git executable, run in dir.
func NewGitCLIService(dir string) repository.GitRepository {
	return &gitCLIService{
		dir:          dir,
		timeout:      DefaultGitTimeout,
		fetchTimeout: DefaultGitFetchTimeout,
	}
}

// Describe runs git describe against annotated tags.
func (s *gitCLIService) Describe(ctx context.Context) (string, error) {
	output, err := s.executeCommand(ctx, s.timeout, "describe", "--abbrev=7")
	if err != nil {
		return "", fmt.Errorf("failed to describe HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBranch returns the short branch name, or "HEAD" when detached.
func (s *gitCLIService) CurrentBranch(ctx context.Context) (string, error) {
	output, err := s.executeCommand(ctx, s.timeout, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// FetchTags fetches tags from origin. A repository without origin has nothing to fetch.
func (s *gitCLIService) FetchTags(ctx context.Context) error {
	remotes, err := s.executeCommand(ctx, s.timeout, "remote")
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}
	if !hasRemote(string(remotes), "origin") {
		return nil
	}
	if _, err := s.executeCommand(ctx, s.fetchTimeout, "fetch", "--tags", "origin"); err != nil {
		return fmt.Errorf("failed to fetch tags: %w", err)
	}
	return nil
}

func hasRemote(output, name string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == name {
			return true
		}
	}
	return false
}

// executeCommand runs git with timeout and maps well-known failures to repository errors.
func (s *gitCLIService) executeCommand(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("git %s timed out after %v", args[0], timeout)
		}
		errMsg := strings.TrimSpace(stderr.String())
		if mapped := classifyGitError(errMsg); mapped != nil {
			return nil, fmt.Errorf("%w: %s", mapped, errMsg)
		}
		if errMsg != "" {
			return nil, fmt.Errorf("git %s failed: %w (stderr: %s)", args[0], err, errMsg)
		}
		return nil, fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}

// classifyGitError recognizes git's messages for a missing repository or missing tags.
func classifyGitError(stderr string) error {
	msg := strings.ToLower(stderr)
	switch {
	case strings.Contains(msg, "not a git repository"):
		return repository.ErrRepositoryNotFound
	case strings.Contains(msg, "no names found"),
		strings.Contains(msg, "no annotated tags can describe"),
		strings.Contains(msg, "no tags can describe"):
		return repository.ErrNoTags
	default:
		return nil
	}
}
