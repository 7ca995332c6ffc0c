package repositories

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// GitRepository abstracts the repository-local Git operations. All
// implementations must reach the filesystem exclusively through validated
// paths and the CommandRunner.
type GitRepository interface {
	// Sync runs the clone-or-pull decision for one repository and returns
	// the action taken. The decision is re-evaluated from live filesystem
	// state on every call.
	Sync(ctx context.Context, repo entities.Repository, protocol entities.Protocol) (entities.SyncAction, error)

	// DetectProtocol classifies the transport of the origin remote at path
	// and returns the configured remote URL alongside it. A missing remote
	// or an unrecognized URL form yields ProtocolUnknown; that is a valid
	// outcome, not an error.
	DetectProtocol(ctx context.Context, path string) (entities.Protocol, string)

	// SetRemoteURL rewrites the origin remote at path to the given URL.
	SetRemoteURL(ctx context.Context, path, url string) error
}
