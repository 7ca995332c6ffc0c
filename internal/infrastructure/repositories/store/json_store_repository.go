package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const cacheFileMode = 0o644

// JSONStoreRepository persists the repository listing as a JSON array on
// disk. Save replaces the file wholesale; there is no merging.
type JSONStoreRepository struct {
	path string
}

// NewJSONStoreRepository creates a store bound to the given file path.
func NewJSONStoreRepository(path string) repositories.StoreRepository {
	return &JSONStoreRepository{path: path}
}

// Load reads the cached listing. A missing cache file is an explicit error so
// cached runs never silently operate on an empty listing.
func (it *JSONStoreRepository) Load() ([]entities.RepositoryInfo, error) {
	data, err := os.ReadFile(it.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("repository cache %q does not exist, run a fresh listing first", it.path)
		}
		return nil, fmt.Errorf("failed to read repository cache: %w", err)
	}

	var infos []entities.RepositoryInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		return nil, fmt.Errorf("failed to decode repository cache %q: %w", it.path, err)
	}
	return infos, nil
}

// Save writes the listing, creating the parent directory when needed.
func (it *JSONStoreRepository) Save(infos []entities.RepositoryInfo) error {
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode repository cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(it.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(it.path, data, cacheFileMode); err != nil {
		return fmt.Errorf("failed to write repository cache: %w", err)
	}
	return nil
}
