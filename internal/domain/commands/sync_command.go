package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reposync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/reposync/internal/infrastructure/repositories"
)

const providerGitHub = "github"

// Sync is the interface for the sync command (batch mode).
type Sync interface {
	Execute(ctx context.Context, settings *entities.Settings, opts SyncOptions) (entities.BatchResult, error)
}

// SyncOptions holds runtime options for a single sync run.
type SyncOptions struct {
	Kind     entities.EntityKind
	Name     string
	Filter   string // If set, only sync repositories whose name contains it
	Protocol entities.Protocol
	Workers  int
	DryRun   bool
	Verbose  bool
	Cached   bool // Read the repository listing from the cache file
	Policy   SwitchPolicy
}

// SyncCommand orchestrates the full synchronization flow: resolve the
// repository listing, reconcile remote protocols, then fan the batch out
// across the worker pool.
type SyncCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	storeFactory     domainRepos.StoreFactory
	protocolHandler  *ProtocolHandler
	processor        *BatchProcessor
}

// NewSyncCommand creates a new SyncCommand with the given collaborators.
func NewSyncCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	storeFactory domainRepos.StoreFactory,
	protocolHandler *ProtocolHandler,
	processor *BatchProcessor,
) *SyncCommand {
	return &SyncCommand{
		providerRegistry: providerRegistry,
		storeFactory:     storeFactory,
		protocolHandler:  protocolHandler,
		processor:        processor,
	}
}

// Execute runs one synchronization pass and returns the aggregated result.
// Configuration and listing failures abort the run; per-repository failures
// are contained to that repository's result entry.
func (it *SyncCommand) Execute(ctx context.Context, settings *entities.Settings, opts SyncOptions) (entities.BatchResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	applySyncDefaults(&opts, settings)

	infos, err := it.resolveListing(ctx, settings, opts)
	if err != nil {
		return entities.BatchResult{}, err
	}

	infos = filterListing(infos, settings, opts.Filter)
	logger.Infof("Syncing %d repositories for %s %q into %s", len(infos), opts.Kind, opts.Name, settings.BaseFolder)

	batch, prefailed := buildBatch(infos, settings.BaseFolder, opts)

	if _, protoErr := it.protocolHandler.Resolve(ctx, batch, opts.Protocol, ResolveOptions{
		DryRun: opts.DryRun,
		Policy: opts.Policy,
	}); protoErr != nil {
		return entities.BatchResult{}, protoErr
	}

	result := it.processor.Process(ctx, batch, ProcessOptions{
		Protocol: opts.Protocol,
		DryRun:   opts.DryRun,
		Workers:  opts.Workers,
	})

	// Path validation failures are failures of their repository only; they
	// are appended after the batch outcomes so reports stay deterministic.
	result.Failed += len(prefailed)
	result.Errors = append(result.Errors, prefailed...)

	logger.Infof(
		"Sync complete: %d processed, %d failed, %d skipped (of %d)",
		result.Processed, result.Failed, result.Skipped, result.Total(),
	)
	return result, nil
}

// resolveListing returns the repository listing either from the cache file
// or from a fresh hosting API fetch. A fresh fetch refreshes the cache; a
// failed cache write is logged, not fatal.
func (it *SyncCommand) resolveListing(ctx context.Context, settings *entities.Settings, opts SyncOptions) ([]entities.RepositoryInfo, error) {
	store := it.storeFactory(settings.CacheFile)

	if opts.Cached {
		infos, err := store.Load()
		if err != nil {
			return nil, err
		}
		logger.Infof("Loaded %d repositories from cache %s", len(infos), settings.CacheFile)
		return infos, nil
	}

	provider, err := it.providerRegistry.Get(providerGitHub, settings)
	if err != nil {
		return nil, err
	}

	infos, listErr := provider.ListRepositories(ctx, opts.Kind, opts.Name)
	if listErr != nil {
		return nil, fmt.Errorf("failed to list repositories for %s %q: %w", opts.Kind, opts.Name, listErr)
	}

	if saveErr := store.Save(infos); saveErr != nil {
		logger.Warnf("Failed to refresh repository cache: %v", saveErr)
	}

	return infos, nil
}

func applySyncDefaults(opts *SyncOptions, settings *entities.Settings) {
	if opts.Protocol == "" || opts.Protocol == entities.ProtocolUnknown {
		opts.Protocol = settings.Protocol
	}
	if opts.Workers <= 0 {
		opts.Workers = settings.Workers
	}
	if opts.Kind == "" {
		opts.Kind = entities.EntityOrganization
	}
	if opts.Policy == "" {
		opts.Policy = PolicyAsk
	}
}

// filterListing drops archived and forked repositories per settings, plus
// everything not matching the name filter.
func filterListing(infos []entities.RepositoryInfo, settings *entities.Settings, filter string) []entities.RepositoryInfo {
	if settings.SkipArchived {
		infos = lo.Filter(infos, func(info entities.RepositoryInfo, _ int) bool {
			return !info.Archived
		})
	}
	if settings.SkipForks {
		infos = lo.Filter(infos, func(info entities.RepositoryInfo, _ int) bool {
			return !info.Fork
		})
	}
	if filter != "" {
		infos = lo.Filter(infos, func(info entities.RepositoryInfo, _ int) bool {
			return strings.Contains(info.Name, filter)
		})
	}
	return infos
}

// buildBatch resolves local paths for the listing. Repositories whose path
// fails validation are recorded as failures, never skipped silently.
func buildBatch(infos []entities.RepositoryInfo, baseFolder string, opts SyncOptions) (entities.RepositoryBatch, []entities.RepoError) {
	batch := entities.RepositoryBatch{
		Kind:         opts.Kind,
		Name:         opts.Name,
		Repositories: make([]entities.Repository, 0, len(infos)),
	}

	var prefailed []entities.RepoError
	for _, info := range infos {
		repo, err := entities.NewRepository(info, baseFolder)
		if err != nil {
			logger.Errorf("Rejected repository %q: %v", info.Name, err)
			prefailed = append(prefailed, entities.RepoError{RepoName: info.Name, Err: err})
			continue
		}
		batch.Repositories = append(batch.Repositories, repo)
	}

	return batch, prefailed
}
