package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactRepository_WriteFile(t *testing.T) {
	ctx := context.Background()
	t.Run("Should write file and create parent directories", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewArtifactRepository(fs, t.TempDir())
		err := repo.WriteFile(ctx, filepath.Join("build", "VERSION"), []byte("VERSION=1.12.2-0.0.5.0"))
		require.NoError(t, err)
		data, err := afero.ReadFile(fs, filepath.Join("build", "VERSION"))
		require.NoError(t, err)
		assert.Equal(t, "VERSION=1.12.2-0.0.5.0", string(data))
		exists, err := afero.Exists(fs, filepath.Join("build", "VERSION.tmp"))
		require.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("Should replace existing content", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "VERSION", []byte("VERSION=old"), 0644))
		repo := NewArtifactRepository(fs, t.TempDir())
		require.NoError(t, repo.WriteFile(ctx, "VERSION", []byte("VERSION=new")))
		data, err := afero.ReadFile(fs, "VERSION")
		require.NoError(t, err)
		assert.Equal(t, "VERSION=new", string(data))
	})
	t.Run("Should serialize concurrent writers", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewArtifactRepository(fs, t.TempDir())
		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.WriteFile(ctx, "VERSION", []byte("VERSION=same"))
			}(i)
		}
		wg.Wait()
		for _, err := range errs {
			assert.NoError(t, err)
		}
		data, err := afero.ReadFile(fs, "VERSION")
		require.NoError(t, err)
		assert.Equal(t, "VERSION=same", string(data))
	})
	t.Run("Should fail when context is already cancelled", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewArtifactRepository(fs, t.TempDir())
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := repo.WriteFile(cancelled, "VERSION", []byte("VERSION=x"))
		assert.Error(t, err)
	})
}

func TestArtifactRepository_ReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "mcmod.info", []byte("{}"), 0644))
	repo := NewArtifactRepository(fs, t.TempDir())
	data, err := repo.ReadFile(context.Background(), "mcmod.info")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	_, err = repo.ReadFile(context.Background(), "missing.info")
	assert.ErrorContains(t, err, "failed to read missing.info")
}
