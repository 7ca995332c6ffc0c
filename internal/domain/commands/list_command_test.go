//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/reposync/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/reposync/test/infrastructure/repositorydoubles"
)

func TestListCommandExecute(t *testing.T) {
	newFixture := func(infos []entities.RepositoryInfo) (*doubles.SpyProviderRepository, *doubles.StubStoreRepository, *commands.ListCommand) {
		provider := &doubles.SpyProviderRepository{ProviderName: "github", Repositories: infos}
		store := &doubles.StubStoreRepository{}

		registry := infraRepos.NewProviderRegistry()
		registry.Register("github", func(_ *entities.Settings) repositories.ProviderRepository {
			return provider
		})

		return provider, store, commands.NewListCommand(registry, store.Factory())
	}

	t.Run("should return the listing and refresh the cache", func(t *testing.T) {
		// given
		provider, store, command := newFixture([]entities.RepositoryInfo{repoInfo("api"), repoInfo("web")})
		settings := testSettings(t)

		// when
		infos, err := command.Execute(context.Background(), settings, commands.ListOptions{
			Kind: entities.EntityUser,
			Name: "octocat",
		})

		// then
		require.NoError(t, err)
		assert.Len(t, infos, 2)
		assert.Equal(t, []entities.EntityKind{entities.EntityUser}, provider.ListedKinds)
		require.Len(t, store.Saved, 1)
		assert.Len(t, store.Saved[0], 2)
	})

	t.Run("should apply the name filter before caching", func(t *testing.T) {
		// given
		_, store, command := newFixture([]entities.RepositoryInfo{repoInfo("api"), repoInfo("web")})
		settings := testSettings(t)

		// when
		infos, err := command.Execute(context.Background(), settings, commands.ListOptions{
			Name:   "acme",
			Filter: "api",
		})

		// then
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, "api", infos[0].Name)
		require.Len(t, store.Saved, 1)
		assert.Len(t, store.Saved[0], 1)
	})

	t.Run("should fail when the listing fails", func(t *testing.T) {
		// given
		provider, store, command := newFixture(nil)
		provider.ListErr = &entities.HostingAPIError{Operation: "list repositories", StatusCode: 403, Body: "rate limited"}
		settings := testSettings(t)

		// when
		_, err := command.Execute(context.Background(), settings, commands.ListOptions{Name: "acme"})

		// then
		require.Error(t, err)
		assert.Empty(t, store.Saved)
	})
}
