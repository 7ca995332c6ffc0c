//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// StubStoreRepository implements repositories.StoreRepository in memory.
type StubStoreRepository struct {
	Infos   []entities.RepositoryInfo
	LoadErr error
	SaveErr error

	// spy: listings saved, in call order
	Saved [][]entities.RepositoryInfo
}

var _ repositories.StoreRepository = (*StubStoreRepository)(nil)

func (s *StubStoreRepository) Load() ([]entities.RepositoryInfo, error) {
	return s.Infos, s.LoadErr
}

func (s *StubStoreRepository) Save(infos []entities.RepositoryInfo) error {
	s.Saved = append(s.Saved, infos)
	return s.SaveErr
}

// Factory returns a StoreFactory that always yields this stub, ignoring the
// configured cache path.
func (s *StubStoreRepository) Factory() repositories.StoreFactory {
	return func(_ string) repositories.StoreRepository {
		return s
	}
}
