package repository

import (
	"context"
	"fmt"
)

// unavailableGitRepository stands in when the project is not inside a git repository.
type unavailableGitRepository struct {
	dir string
}

// NewUnavailableGitRepository returns a GitRepository whose operations all fail with ErrRepositoryNotFound.
func NewUnavailableGitRepository(dir string) GitRepository {
	return &unavailableGitRepository{dir: dir}
}

func (r *unavailableGitRepository) Describe(_ context.Context) (string, error) {
	return "", r.operationError("describe HEAD")
}

func (r *unavailableGitRepository) CurrentBranch(_ context.Context) (string, error) {
	return "", r.operationError("read current branch")
}

func (r *unavailableGitRepository) FetchTags(_ context.Context) error {
	return r.operationError("fetch tags")
}

func (r *unavailableGitRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s in %s", ErrRepositoryNotFound, action, r.dir)
}
