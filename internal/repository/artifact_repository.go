package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// ArtifactFilePermissions defines the permissions for written artifacts
	ArtifactFilePermissions = 0644
	// ArtifactDirPermissions defines the permissions for artifact directories
	ArtifactDirPermissions = 0755
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ArtifactRepository reads project files and writes generated version artifacts.
type ArtifactRepository interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile replaces path atomically while holding an exclusive lock,
	// so parallel builds never observe a half-written file.
	WriteFile(ctx context.Context, path string, data []byte) error
}

// fileArtifactRepository implements ArtifactRepository on an afero filesystem.
type fileArtifactRepository struct {
	fs      afero.Fs
	lockDir string
}

// NewArtifactRepository creates an artifact repository. Lock files live in
// lockDir on the host filesystem; it defaults to the OS temp directory.
func NewArtifactRepository(fs afero.Fs, lockDir string) ArtifactRepository {
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	return &fileArtifactRepository{fs: fs, lockDir: lockDir}
}

// ReadFile reads a project file.
func (r *fileArtifactRepository) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path via a temp file and rename under a file lock.
func (r *fileArtifactRepository) WriteFile(ctx context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := r.fs.MkdirAll(dir, ArtifactDirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	lock := flock.New(r.getLockFilename(path))
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, LockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock within timeout")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", unlockErr)
		}
	}()
	tempFile := path + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, ArtifactFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := r.fs.Rename(tempFile, path); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}

// getLockFilename returns the lock file guarding path.
func (r *fileArtifactRepository) getLockFilename(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	name := strings.NewReplacer(string(filepath.Separator), "_", ":", "_").Replace(abs)
	return filepath.Join(r.lockDir, fmt.Sprintf(".modver-%s.lock", strings.TrimLeft(name, "_")))
}
