package service

import "time"

// Timeout constants for service operations
const (
	// DefaultGitTimeout is the timeout for local git commands
	DefaultGitTimeout = 30 * time.Second
	// DefaultGitFetchTimeout is the timeout for git commands that talk to a remote
	DefaultGitFetchTimeout = 2 * time.Minute
)
