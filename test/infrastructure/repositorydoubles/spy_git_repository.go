//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// DetectedRemote is the canned answer for one local path.
type DetectedRemote struct {
	Protocol entities.Protocol
	URL      string
}

// SetRemoteCall records a single SetRemoteURL invocation.
type SetRemoteCall struct {
	Path string
	URL  string
}

// SpyGitRepository implements repositories.GitRepository as a configurable
// spy. Safe for concurrent use; batch processing calls Sync from multiple
// workers.
type SpyGitRepository struct {
	mu sync.Mutex

	// --- Sync ---
	SyncAction entities.SyncAction
	SyncErrs   map[string]error // repo name -> error
	PanicOn    map[string]bool  // repo name -> panic inside Sync
	// spy: repo names synced, in call order
	SyncedNames []string

	// --- DetectProtocol ---
	Detected map[string]DetectedRemote // local path -> remote

	// --- SetRemoteURL ---
	SetRemoteErrs map[string]string // local path -> error message
	// spy: rewrites received
	SetRemoteCalls []SetRemoteCall
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (g *SpyGitRepository) Sync(_ context.Context, repo entities.Repository, _ entities.Protocol) (entities.SyncAction, error) {
	g.mu.Lock()
	g.SyncedNames = append(g.SyncedNames, repo.Info.Name)
	g.mu.Unlock()

	if g.PanicOn[repo.Info.Name] {
		panic("boom: " + repo.Info.Name)
	}
	if err, ok := g.SyncErrs[repo.Info.Name]; ok {
		return "", err
	}

	action := g.SyncAction
	if action == "" {
		action = entities.ActionPulled
	}
	return action, nil
}

func (g *SpyGitRepository) DetectProtocol(_ context.Context, path string) (entities.Protocol, string) {
	remote, ok := g.Detected[path]
	if !ok {
		return entities.ProtocolUnknown, ""
	}
	return remote.Protocol, remote.URL
}

func (g *SpyGitRepository) SetRemoteURL(_ context.Context, path, url string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.SetRemoteCalls = append(g.SetRemoteCalls, SetRemoteCall{Path: path, URL: url})
	if msg, ok := g.SetRemoteErrs[path]; ok {
		return &entities.GitOperationError{Command: "git remote set-url origin " + url, Stderr: msg}
	}
	return nil
}
