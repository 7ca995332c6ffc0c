package repositories

import (
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// StoreRepository persists the repository listing between runs. Load fails
// explicitly when no cache exists; it never degrades to an empty result.
// Save replaces the whole cache after a fresh hosting API fetch.
type StoreRepository interface {
	Load() ([]entities.RepositoryInfo, error)
	Save(infos []entities.RepositoryInfo) error
}

// StoreFactory builds a StoreRepository for the cache file configured at
// runtime. The cache path is part of Settings, so stores cannot be
// constructed at wiring time.
type StoreFactory func(path string) StoreRepository
