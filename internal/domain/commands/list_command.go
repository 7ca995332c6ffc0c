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

// List is the interface for the list command.
type List interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ListOptions) ([]entities.RepositoryInfo, error)
}

// ListOptions holds runtime options for one listing fetch.
type ListOptions struct {
	Kind    entities.EntityKind
	Name    string
	Filter  string
	Verbose bool
}

// ListCommand fetches the repository inventory from the hosting API and
// refreshes the on-disk cache with it.
type ListCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	storeFactory     domainRepos.StoreFactory
}

// NewListCommand creates a new ListCommand.
func NewListCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	storeFactory domainRepos.StoreFactory,
) *ListCommand {
	return &ListCommand{
		providerRegistry: providerRegistry,
		storeFactory:     storeFactory,
	}
}

// Execute fetches the listing, filters it, and writes the cache wholesale.
func (it *ListCommand) Execute(ctx context.Context, settings *entities.Settings, opts ListOptions) ([]entities.RepositoryInfo, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if opts.Kind == "" {
		opts.Kind = entities.EntityOrganization
	}

	provider, err := it.providerRegistry.Get(providerGitHub, settings)
	if err != nil {
		return nil, err
	}

	infos, listErr := provider.ListRepositories(ctx, opts.Kind, opts.Name)
	if listErr != nil {
		return nil, fmt.Errorf("failed to list repositories for %s %q: %w", opts.Kind, opts.Name, listErr)
	}

	if opts.Filter != "" {
		infos = lo.Filter(infos, func(info entities.RepositoryInfo, _ int) bool {
			return strings.Contains(info.Name, opts.Filter)
		})
	}

	store := it.storeFactory(settings.CacheFile)
	if saveErr := store.Save(infos); saveErr != nil {
		logger.Warnf("Failed to write repository cache: %v", saveErr)
	} else {
		logger.Infof("Cached %d repositories in %s", len(infos), settings.CacheFile)
	}

	return infos, nil
}
