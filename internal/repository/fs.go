package repository

import "github.com/spf13/afero"

// FileSystemRepository is the project filesystem. Production uses afero.NewOsFs,
// tests an in-memory filesystem.
type FileSystemRepository interface {
	afero.Fs
}
