package repository

import (
	"context"
	"errors"
)

var (
	// ErrRepositoryNotFound is returned when no git repository contains the project directory.
	ErrRepositoryNotFound = errors.New("git repository not found")
	// ErrNoTags is returned by Describe when no annotated tag is reachable from HEAD.
	ErrNoTags = errors.New("no annotated tag reachable from HEAD")
)

// GitRepository defines the source-control information needed to version a build.
type GitRepository interface {
	// Describe returns "<tag>" or "<tag>-<commits>-g<hash>" for the nearest annotated tag.
	Describe(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	FetchTags(ctx context.Context) error
}
