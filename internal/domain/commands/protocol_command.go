package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reposync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/reposync/internal/infrastructure/repositories"
)

// Protocol is the interface for the protocol command.
type Protocol interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ProtocolOptions) (ProtocolOutcome, error)
}

// ProtocolOptions holds runtime options for one protocol reconciliation.
type ProtocolOptions struct {
	Kind    entities.EntityKind
	Name    string
	Desired entities.Protocol
	DryRun  bool
	Verbose bool
	Cached  bool
	Policy  SwitchPolicy
}

// ProtocolCommand reconciles the transport of already-cloned repositories
// without synchronizing them.
type ProtocolCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	storeFactory     domainRepos.StoreFactory
	handler          *ProtocolHandler
}

// NewProtocolCommand creates a new ProtocolCommand.
func NewProtocolCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	storeFactory domainRepos.StoreFactory,
	handler *ProtocolHandler,
) *ProtocolCommand {
	return &ProtocolCommand{
		providerRegistry: providerRegistry,
		storeFactory:     storeFactory,
		handler:          handler,
	}
}

// Execute scans the locally existing repositories of the batch and resolves
// protocol mismatches per the configured policy.
func (it *ProtocolCommand) Execute(ctx context.Context, settings *entities.Settings, opts ProtocolOptions) (ProtocolOutcome, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if opts.Kind == "" {
		opts.Kind = entities.EntityOrganization
	}
	if opts.Desired == "" || opts.Desired == entities.ProtocolUnknown {
		opts.Desired = settings.Protocol
	}
	if opts.Policy == "" {
		opts.Policy = PolicyAsk
	}

	infos, err := it.resolveListing(ctx, settings, opts)
	if err != nil {
		return ProtocolOutcome{}, err
	}

	batch, prefailed := buildBatch(infos, settings.BaseFolder, SyncOptions{Kind: opts.Kind, Name: opts.Name})
	for _, failure := range prefailed {
		logger.Errorf("Skipping %q: %v", failure.RepoName, failure.Err)
	}

	return it.handler.Resolve(ctx, batch, opts.Desired, ResolveOptions{
		DryRun: opts.DryRun,
		Policy: opts.Policy,
	})
}

func (it *ProtocolCommand) resolveListing(ctx context.Context, settings *entities.Settings, opts ProtocolOptions) ([]entities.RepositoryInfo, error) {
	if opts.Cached {
		return it.storeFactory(settings.CacheFile).Load()
	}

	provider, err := it.providerRegistry.Get(providerGitHub, settings)
	if err != nil {
		return nil, err
	}
	return provider.ListRepositories(ctx, opts.Kind, opts.Name)
}
