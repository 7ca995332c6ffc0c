//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

func TestNewRepository(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the local path under the base folder", func(t *testing.T) {
		// given
		info := entities.RepositoryInfo{Name: "api"}

		// when
		repo, err := entities.NewRepository(info, "/srv/repos")

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/srv/repos", "api"), repo.LocalPath)
	})

	t.Run("should reject names that escape the base folder", func(t *testing.T) {
		// given
		info := entities.RepositoryInfo{Name: "../outside"}

		// when
		_, err := entities.NewRepository(info, "/srv/repos")

		// then
		var pathErr *entities.PathValidationError
		require.ErrorAs(t, err, &pathErr)
	})
}

func TestRepositoryExistsLocally(t *testing.T) {
	t.Run("should report true only when a .git directory exists", func(t *testing.T) {
		// given
		base := t.TempDir()
		repo, err := entities.NewRepository(entities.RepositoryInfo{Name: "api"}, base)
		require.NoError(t, err)

		// then: nothing on disk yet
		assert.False(t, repo.ExistsLocally())

		// when: a bare directory appears
		require.NoError(t, os.MkdirAll(repo.LocalPath, 0o755))
		assert.False(t, repo.ExistsLocally())

		// when: the Git metadata directory appears
		require.NoError(t, os.MkdirAll(filepath.Join(repo.LocalPath, ".git"), 0o755))
		assert.True(t, repo.ExistsLocally())
	})

	t.Run("should ignore a plain .git file", func(t *testing.T) {
		// given
		base := t.TempDir()
		repo, err := entities.NewRepository(entities.RepositoryInfo{Name: "api"}, base)
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(repo.LocalPath, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(repo.LocalPath, ".git"), []byte("gitdir: elsewhere"), 0o644))

		// then
		assert.False(t, repo.ExistsLocally())
	})
}
