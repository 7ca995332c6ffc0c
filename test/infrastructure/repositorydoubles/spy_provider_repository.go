//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListRepositories ---
	Repositories []entities.RepositoryInfo
	ListErr      error
	// spy: names that were requested
	ListedNames []string
	ListedKinds []entities.EntityKind
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) ListRepositories(
	_ context.Context,
	kind entities.EntityKind,
	name string,
) ([]entities.RepositoryInfo, error) {
	p.ListedNames = append(p.ListedNames, name)
	p.ListedKinds = append(p.ListedKinds, kind)
	return p.Repositories, p.ListErr
}
