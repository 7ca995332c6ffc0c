package entities

import (
	"os"
	"path/filepath"
)

// EntityKind identifies the kind of account repositories are fetched for.
type EntityKind string

const (
	EntityOrganization EntityKind = "org"
	EntityUser         EntityKind = "user"
)

// RepositoryInfo is an immutable descriptor of a hosted repository as
// returned by the hosting API or loaded from the local cache. It is never
// mutated after creation.
type RepositoryInfo struct {
	Name          string `json:"name"`
	CloneURL      string `json:"clone_url"`
	SSHURL        string `json:"ssh_url"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	Archived      bool   `json:"archived"`
}

// URLFor returns the remote URL matching the given transport protocol.
func (r RepositoryInfo) URLFor(protocol Protocol) string {
	if protocol == ProtocolSSH {
		return r.SSHURL
	}
	return r.CloneURL
}

// Repository pairs a RepositoryInfo with its resolved local working copy path.
type Repository struct {
	Info      RepositoryInfo
	LocalPath string
}

// NewRepository resolves and validates the local path for info under
// baseFolder. The path is validated before any filesystem or subprocess
// operation ever sees it.
func NewRepository(info RepositoryInfo, baseFolder string) (Repository, error) {
	path, err := ResolveRepoPath(baseFolder, info.Name)
	if err != nil {
		return Repository{}, err
	}
	return Repository{Info: info, LocalPath: path}, nil
}

// ExistsLocally reports whether the local path contains a Git metadata
// directory. It is evaluated live on every call; the filesystem can change
// between invocations, so the answer is never cached.
func (r Repository) ExistsLocally() bool {
	stat, err := os.Stat(filepath.Join(r.LocalPath, ".git"))
	return err == nil && stat.IsDir()
}
