package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/reposync/internal/domain/repositories"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/execrunner"
	ghRepo "github.com/rios0rios0/reposync/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/gitcli"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/prompt"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/store"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewGitHubProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(execrunner.NewExecCommandRunner); err != nil {
		return err
	}
	if err := container.Provide(gitcli.NewGitCLIRepository); err != nil {
		return err
	}
	if err := container.Provide(prompt.NewTerminalPrompter); err != nil {
		return err
	}

	// The cache path is only known once the settings are loaded, so the
	// store is provided as a factory instead of an instance.
	if err := container.Provide(func() domainRepos.StoreFactory {
		return store.NewJSONStoreRepository
	}); err != nil {
		return err
	}

	return nil
}
