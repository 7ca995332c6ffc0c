package repositories

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// ProviderRepository abstracts a Git hosting service that can list the
// repositories of an organization or user account.
type ProviderRepository interface {
	Name() string
	ListRepositories(ctx context.Context, kind entities.EntityKind, name string) ([]entities.RepositoryInfo, error)
}
