package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/compozy/modver/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/sethvargo/go-retry"
)

const (
	// abbrevLength is the number of hash characters in describe output.
	abbrevLength = 7
	// DefaultFetchRetries is the number of retries for fetching tags from origin.
	DefaultFetchRetries = 3
	// DefaultFetchDelay is the initial delay for the fetch backoff.
	DefaultFetchDelay = 1 * time.Second
)

// gitRepository is the go-git implementation of the GitRepository interface.
type gitRepository struct {
	repo         *git.Repository
	fetchRetries uint64
	fetchDelay   time.Duration
}

// NewGitRepository opens the repository containing dir, searching parent directories.
func NewGitRepository(dir string) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrRepositoryNotFound, dir)
		}
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return newGitRepository(repo), nil
}

func newGitRepository(repo *git.Repository) *gitRepository {
	return &gitRepository{
		repo:         repo,
		fetchRetries: DefaultFetchRetries,
		fetchDelay:   DefaultFetchDelay,
	}
}

// Describe finds the nearest annotated tag reachable from HEAD, walking
// history newest first, and reports how many commits HEAD is ahead of it.
func (r *gitRepository) Describe(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	tags, err := r.annotatedTags()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", ErrNoTags
	}
	tagCommit, tagName, err := r.nearestTag(head.Hash(), tags)
	if err != nil {
		return "", err
	}
	if tagCommit == head.Hash() {
		return tagName, nil
	}
	depth, err := r.countCommitsSince(head.Hash(), tagCommit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-g%s", tagName, depth, head.Hash().String()[:abbrevLength]), nil
}

// annotatedTags maps tagged commits to tag names. Lightweight tags are
// skipped. When several tags point at one commit the highest version wins.
func (r *gitRepository) annotatedTags() (map[plumbing.Hash]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	tags := make(map[plumbing.Hash]string)
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		tag, err := r.repo.TagObject(ref.Hash())
		if err != nil {
			return nil // lightweight tag
		}
		commit, err := tag.Commit()
		if err != nil {
			return nil // tag of a tree or blob
		}
		name := ref.Name().Short()
		if existing, ok := tags[commit.Hash]; ok {
			name = preferredTag(existing, name)
		}
		tags[commit.Hash] = name
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// preferredTag picks between two tags on the same commit.
func preferredTag(a, b string) string {
	va, errA := domain.NewTagVersion(a)
	vb, errB := domain.NewTagVersion(b)
	switch {
	case errA == nil && errB == nil:
		if vb.Compare(va) > 0 {
			return b
		}
		return a
	case errA == nil:
		return a
	case errB == nil:
		return b
	case b > a:
		return b
	default:
		return a
	}
}

// nearestTag walks history from HEAD by commit time and returns the first tagged commit.
func (r *gitRepository) nearestTag(from plumbing.Hash, tags map[plumbing.Hash]string) (plumbing.Hash, string, error) {
	commits, err := r.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return plumbing.ZeroHash, "", fmt.Errorf("failed to get commits: %w", err)
	}
	var found plumbing.Hash
	err = commits.ForEach(func(c *object.Commit) error {
		if _, ok := tags[c.Hash]; ok {
			found = c.Hash
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return plumbing.ZeroHash, "", fmt.Errorf("failed to iterate commits: %w", err)
	}
	if found.IsZero() {
		return plumbing.ZeroHash, "", ErrNoTags
	}
	return found, tags[found], nil
}

// countCommitsSince counts commits reachable from head but not from the tag commit.
func (r *gitRepository) countCommitsSince(head, tagCommit plumbing.Hash) (int, error) {
	tagged, err := r.ancestors(tagCommit)
	if err != nil {
		return 0, err
	}
	commits, err := r.repo.Log(&git.LogOptions{From: head})
	if err != nil {
		return 0, fmt.Errorf("failed to get commits: %w", err)
	}
	var count int
	err = commits.ForEach(func(c *object.Commit) error {
		if _, ok := tagged[c.Hash]; !ok {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to iterate commits: %w", err)
	}
	return count, nil
}

func (r *gitRepository) ancestors(from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	commits, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("failed to get commits: %w", err)
	}
	seen := make(map[plumbing.Hash]struct{})
	err = commits.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}
	return seen, nil
}

// CurrentBranch returns the short name of the checked out branch, or "HEAD" when detached.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return plumbing.HEAD.String(), nil
	}
	return head.Name().Short(), nil
}

// FetchTags fetches tags from origin so describe sees tags made elsewhere.
// Repositories without an origin remote are left alone.
func (r *gitRepository) FetchTags(ctx context.Context) error {
	remote, err := r.repo.Remote("origin")
	if errors.Is(err, git.ErrRemoteNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get remote: %w", err)
	}
	opts := &git.FetchOptions{
		RefSpecs: []config.RefSpec{
			config.RefSpec("+refs/tags/*:refs/tags/*"),
		},
		Auth: r.getAuth(),
	}
	return retry.Do(
		ctx,
		retry.WithMaxRetries(r.fetchRetries, retry.NewExponential(r.fetchDelay)),
		func(ctx context.Context) error {
			err := remote.FetchContext(ctx, opts)
			if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
				return nil
			}
			if isPermanentFetchError(err) {
				return fmt.Errorf("failed to fetch tags from origin: %w", err)
			}
			return retry.RetryableError(fmt.Errorf("failed to fetch tags from origin: %w", err))
		},
	)
}

func isPermanentFetchError(err error) bool {
	return errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		errors.Is(err, transport.ErrRepositoryNotFound) ||
		errors.Is(err, transport.ErrInvalidAuthMethod)
}

// getAuth returns authentication configuration for GitHub Actions.
// A nil interface is returned when no token is set so other transports keep their defaults.
func (r *gitRepository) getAuth() transport.AuthMethod {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("MODVER_GITHUB_TOKEN")
	}
	if token == "" {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}
}
