//go:build unit

package gitcli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/gitcli"
	doubles "github.com/rios0rios0/reposync/test/infrastructure/repositorydoubles"
)

func newRepo(t *testing.T, base string, cloned bool) entities.Repository {
	t.Helper()

	repo, err := entities.NewRepository(entities.RepositoryInfo{
		Name:          "api",
		CloneURL:      "https://github.com/acme/api.git",
		SSHURL:        "git@github.com:acme/api.git",
		DefaultBranch: "develop",
	}, base)
	require.NoError(t, err)

	if cloned {
		require.NoError(t, os.MkdirAll(filepath.Join(repo.LocalPath, ".git"), 0o755))
	}
	return repo
}

func TestGitCLIRepositorySync(t *testing.T) {
	t.Run("should clone a repository that does not exist locally", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{}
		gitRepo := gitcli.NewGitCLIRepository(runner)
		repo := newRepo(t, t.TempDir(), false)

		// when
		action, err := gitRepo.Sync(context.Background(), repo, entities.ProtocolHTTPS)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ActionCloned, action)
		require.Len(t, runner.Calls, 1)
		assert.Equal(t, []string{"clone", "https://github.com/acme/api.git", repo.LocalPath}, runner.Calls[0].Args)
	})

	t.Run("should clone over ssh when requested", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{}
		gitRepo := gitcli.NewGitCLIRepository(runner)
		repo := newRepo(t, t.TempDir(), false)

		// when
		action, err := gitRepo.Sync(context.Background(), repo, entities.ProtocolSSH)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ActionCloned, action)
		assert.Equal(t, "git@github.com:acme/api.git", runner.Calls[0].Args[1])
	})

	t.Run("should check out and pull an existing clean repository", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{}
		gitRepo := gitcli.NewGitCLIRepository(runner)
		repo := newRepo(t, t.TempDir(), true)

		// when
		action, err := gitRepo.Sync(context.Background(), repo, entities.ProtocolHTTPS)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ActionPulled, action)
		assert.Equal(t, []string{"rev-parse", "status", "checkout", "pull"}, runner.CommandKeys())

		pull := runner.Calls[3]
		assert.Equal(t, []string{"pull", "origin", "develop"}, pull.Args)
		assert.Equal(t, repo.LocalPath, pull.Dir)
	})

	t.Run("should skip a repository without commits", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{
			Results: map[string]doubles.CommandOutcome{
				"rev-parse": {Err: &entities.GitOperationError{Command: "git rev-parse HEAD", Stderr: "fatal: ambiguous argument 'HEAD'"}},
			},
		}
		gitRepo := gitcli.NewGitCLIRepository(runner)
		repo := newRepo(t, t.TempDir(), true)

		// when
		action, err := gitRepo.Sync(context.Background(), repo, entities.ProtocolHTTPS)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ActionSkippedEmpty, action)
		assert.Equal(t, []string{"rev-parse"}, runner.CommandKeys(), "no further git command may run")
	})

	t.Run("should skip a repository with uncommitted changes", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{
			Results: map[string]doubles.CommandOutcome{
				"status": {Stdout: " M main.go\n?? notes.txt\n"},
			},
		}
		gitRepo := gitcli.NewGitCLIRepository(runner)
		repo := newRepo(t, t.TempDir(), true)

		// when
		action, err := gitRepo.Sync(context.Background(), repo, entities.ProtocolHTTPS)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ActionSkippedDirty, action)
		assert.Equal(t, []string{"rev-parse", "status"}, runner.CommandKeys())
	})

	t.Run("should surface a failing pull", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{
			Results: map[string]doubles.CommandOutcome{
				"pull": {Err: &entities.GitOperationError{Command: "git pull origin develop", Stderr: "fatal: unable to access"}},
			},
		}
		gitRepo := gitcli.NewGitCLIRepository(runner)
		repo := newRepo(t, t.TempDir(), true)

		// when
		_, err := gitRepo.Sync(context.Background(), repo, entities.ProtocolHTTPS)

		// then
		var gitErr *entities.GitOperationError
		require.ErrorAs(t, err, &gitErr)
	})
}

func TestGitCLIRepositoryDetectProtocol(t *testing.T) {
	t.Run("should classify the configured origin remote", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{
			Results: map[string]doubles.CommandOutcome{
				"remote get-url": {Stdout: "git@github.com:acme/api.git\n"},
			},
		}
		gitRepo := gitcli.NewGitCLIRepository(runner)

		// when
		protocol, url := gitRepo.DetectProtocol(context.Background(), "/srv/repos/api")

		// then
		assert.Equal(t, entities.ProtocolSSH, protocol)
		assert.Equal(t, "git@github.com:acme/api.git", url)
	})

	t.Run("should return unknown when the remote cannot be read", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{
			Results: map[string]doubles.CommandOutcome{
				"remote get-url": {Err: &entities.GitOperationError{Command: "git remote get-url origin", Stderr: "error: No such remote"}},
			},
		}
		gitRepo := gitcli.NewGitCLIRepository(runner)

		// when
		protocol, url := gitRepo.DetectProtocol(context.Background(), "/srv/repos/api")

		// then
		assert.Equal(t, entities.ProtocolUnknown, protocol)
		assert.Empty(t, url)
	})
}

func TestGitCLIRepositorySetRemoteURL(t *testing.T) {
	t.Run("should rewrite the origin remote in place", func(t *testing.T) {
		// given
		runner := &doubles.StubCommandRunner{}
		gitRepo := gitcli.NewGitCLIRepository(runner)

		// when
		err := gitRepo.SetRemoteURL(context.Background(), "/srv/repos/api", "https://github.com/acme/api.git")

		// then
		require.NoError(t, err)
		require.Len(t, runner.Calls, 1)
		assert.Equal(t, []string{"remote", "set-url", "origin", "https://github.com/acme/api.git"}, runner.Calls[0].Args)
		assert.Equal(t, "/srv/repos/api", runner.Calls[0].Dir)
	})
}
