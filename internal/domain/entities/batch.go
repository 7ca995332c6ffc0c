package entities

// RepositoryBatch is the ordered set of repositories targeted by one run,
// together with the entity they were fetched for. Processing may complete
// out of order, but the submission order is preserved for reporting.
type RepositoryBatch struct {
	Kind         EntityKind
	Name         string
	Repositories []Repository
}

// SyncAction is the terminal outcome of the clone-or-pull decision for a
// single repository.
type SyncAction string

const (
	ActionCloned       SyncAction = "cloned"
	ActionPulled       SyncAction = "pulled"
	ActionSkippedEmpty SyncAction = "skipped-empty"
	ActionSkippedDirty SyncAction = "skipped-dirty"
	ActionDryRun       SyncAction = "dry-run"
)

// RepoError pairs a repository name with the error that failed it.
type RepoError struct {
	RepoName string
	Err      error
}

// BatchResult aggregates per-repository outcomes of one batch run.
// Processed + Failed + Skipped always equals the number of repositories
// submitted, no matter how many individual repositories failed.
type BatchResult struct {
	Processed int
	Failed    int
	Skipped   int
	Errors    []RepoError
}

// Total returns the number of repositories accounted for.
func (r BatchResult) Total() int {
	return r.Processed + r.Failed + r.Skipped
}
