package gitcli

import (
	"context"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const (
	gitBinary = "git"

	// Clone and pull move repository content over the network; metadata
	// commands only touch local state.
	clonePullTimeout = 300 * time.Second
	metadataTimeout  = 10 * time.Second
)

// GitCLIRepository implements repositories.GitRepository by shelling out to
// the git binary through the CommandRunner.
type GitCLIRepository struct {
	runner repositories.CommandRunner
}

// NewGitCLIRepository creates a new GitCLIRepository.
func NewGitCLIRepository(runner repositories.CommandRunner) repositories.GitRepository {
	return &GitCLIRepository{runner: runner}
}

// Sync brings one repository up to date. A missing working copy is cloned; an
// existing one is pulled unless it has no commits yet or carries uncommitted
// changes, in which case it is left untouched.
func (it *GitCLIRepository) Sync(ctx context.Context, repo entities.Repository, protocol entities.Protocol) (entities.SyncAction, error) {
	if !repo.ExistsLocally() {
		return it.clone(ctx, repo, protocol)
	}

	if !it.hasCommits(ctx, repo.LocalPath) {
		logger.Warnf("Skipping %q: repository has no commits", repo.Info.Name)
		return entities.ActionSkippedEmpty, nil
	}

	if dirty, err := it.isDirty(ctx, repo.LocalPath); err != nil {
		return "", err
	} else if dirty {
		logger.Warnf("Skipping %q: working tree has uncommitted changes", repo.Info.Name)
		return entities.ActionSkippedDirty, nil
	}

	return it.pull(ctx, repo)
}

func (it *GitCLIRepository) clone(ctx context.Context, repo entities.Repository, protocol entities.Protocol) (entities.SyncAction, error) {
	url := repo.Info.URLFor(protocol)
	logger.Infof("Cloning %q from %s", repo.Info.Name, url)

	if _, err := it.runner.Run(ctx, repositories.CommandSpec{
		Name:    gitBinary,
		Args:    []string{"clone", url, repo.LocalPath},
		Timeout: clonePullTimeout,
	}); err != nil {
		return "", err
	}
	return entities.ActionCloned, nil
}

func (it *GitCLIRepository) pull(ctx context.Context, repo entities.Repository) (entities.SyncAction, error) {
	branch := repo.Info.DefaultBranch
	logger.Debugf("Pulling %q on branch %s", repo.Info.Name, branch)

	if _, err := it.runner.Run(ctx, repositories.CommandSpec{
		Name:    gitBinary,
		Args:    []string{"checkout", branch},
		Dir:     repo.LocalPath,
		Timeout: metadataTimeout,
	}); err != nil {
		return "", err
	}

	if _, err := it.runner.Run(ctx, repositories.CommandSpec{
		Name:    gitBinary,
		Args:    []string{"pull", "origin", branch},
		Dir:     repo.LocalPath,
		Timeout: clonePullTimeout,
	}); err != nil {
		return "", err
	}
	return entities.ActionPulled, nil
}

// hasCommits reports whether HEAD resolves to a commit. It fails on freshly
// initialized repositories that have never been committed to.
func (it *GitCLIRepository) hasCommits(ctx context.Context, path string) bool {
	_, err := it.runner.Run(ctx, repositories.CommandSpec{
		Name:    gitBinary,
		Args:    []string{"rev-parse", "HEAD"},
		Dir:     path,
		Timeout: metadataTimeout,
	})
	return err == nil
}

func (it *GitCLIRepository) isDirty(ctx context.Context, path string) (bool, error) {
	result, err := it.runner.Run(ctx, repositories.CommandSpec{
		Name:    gitBinary,
		Args:    []string{"status", "--porcelain"},
		Dir:     path,
		Timeout: metadataTimeout,
	})
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(result.Stdout) != "", nil
}

// DetectProtocol reads the origin remote and classifies its transport. Any
// failure to read the remote means the transport cannot be known.
func (it *GitCLIRepository) DetectProtocol(ctx context.Context, path string) (entities.Protocol, string) {
	result, err := it.runner.Run(ctx, repositories.CommandSpec{
		Name:    gitBinary,
		Args:    []string{"remote", "get-url", "origin"},
		Dir:     path,
		Timeout: metadataTimeout,
	})
	if err != nil {
		return entities.ProtocolUnknown, ""
	}

	url := strings.TrimSpace(result.Stdout)
	return entities.ClassifyRemoteURL(url), url
}

// SetRemoteURL rewrites the origin remote in place.
func (it *GitCLIRepository) SetRemoteURL(ctx context.Context, path, url string) error {
	_, err := it.runner.Run(ctx, repositories.CommandSpec{
		Name:    gitBinary,
		Args:    []string{"remote", "set-url", "origin", url},
		Dir:     path,
		Timeout: metadataTimeout,
	})
	return err
}
