package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/korovkin/limiter"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// ProcessOptions holds the read-only configuration shared by all workers
// of one batch run.
type ProcessOptions struct {
	Protocol entities.Protocol
	DryRun   bool
	Workers  int
}

// BatchProcessor fans a repository batch out across a bounded worker pool
// and aggregates per-repository outcomes. No single repository's failure
// ever halts the batch or cancels sibling work.
type BatchProcessor struct {
	gitRepo repositories.GitRepository
}

// NewBatchProcessor creates a new BatchProcessor backed by the given Git port.
func NewBatchProcessor(gitRepo repositories.GitRepository) *BatchProcessor {
	return &BatchProcessor{gitRepo: gitRepo}
}

// repoOutcome is the per-repository result slot. Workers write disjoint
// indices, so the slice needs no lock; aggregation happens after the pool
// has drained, in submission order.
type repoOutcome struct {
	action  entities.SyncAction
	err     error
	skipped bool
}

// Process synchronizes every repository in the batch with at most
// opts.Workers concurrent workers and returns the aggregated result.
// The invariant Processed+Failed+Skipped == len(batch.Repositories) holds
// even when individual workers fail or panic. Cancelling ctx stops
// dispatching new work; repositories never dispatched count as skipped.
func (it *BatchProcessor) Process(ctx context.Context, batch entities.RepositoryBatch, opts ProcessOptions) entities.BatchResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	outcomes := make([]repoOutcome, len(batch.Repositories))
	limit := limiter.NewConcurrencyLimiter(workers)

	for i := range batch.Repositories {
		if ctx.Err() != nil {
			outcomes[i] = repoOutcome{skipped: true}
			continue
		}

		index := i
		repo := batch.Repositories[i]
		limit.Execute(func() {
			outcomes[index] = it.processOne(ctx, repo, opts)
		})
	}

	limit.WaitAndClose()

	return aggregate(batch, outcomes)
}

// processOne runs a single repository's work unit. Panics are contained at
// this boundary and recorded as that repository's failure.
func (it *BatchProcessor) processOne(ctx context.Context, repo entities.Repository, opts ProcessOptions) (outcome repoOutcome) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			logger.Errorf("Panic while processing %q: %v\n%s", repo.Info.Name, r, stack)
			outcome = repoOutcome{err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if ctx.Err() != nil {
		return repoOutcome{skipped: true}
	}

	if opts.DryRun {
		logger.Infof("[dry-run] would sync %q into %s", repo.Info.Name, repo.LocalPath)
		return repoOutcome{action: entities.ActionDryRun}
	}

	action, err := it.gitRepo.Sync(ctx, repo, opts.Protocol)
	if err != nil {
		logger.Errorf("Failed to sync %q: %v", repo.Info.Name, err)
		return repoOutcome{err: err}
	}

	logger.Debugf("Synced %q: %s", repo.Info.Name, action)
	return repoOutcome{action: action}
}

// aggregate folds the per-index outcomes into a BatchResult, keeping the
// error list in submission order so reports stay reproducible regardless of
// completion order.
func aggregate(batch entities.RepositoryBatch, outcomes []repoOutcome) entities.BatchResult {
	var result entities.BatchResult
	for i, outcome := range outcomes {
		switch {
		case outcome.err != nil:
			result.Failed++
			result.Errors = append(result.Errors, entities.RepoError{
				RepoName: batch.Repositories[i].Info.Name,
				Err:      outcome.err,
			})
		case outcome.skipped:
			result.Skipped++
		default:
			result.Processed++
		}
	}
	return result
}
