// Package config persists the two paths vaultbak needs between runs: the
// vault directory being backed up and the local backup repository. Each
// value is the sole line of a plain text file under the per-user config
// directory, so it stays stable across runs and editable by hand.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vaultbak/vaultbak/internal/application"
)

// Well-known config keys.
const (
	KeyVaultPath = "vault_path"
	KeyRepoPath  = "repo_path"
)

// Store reads and writes single-line config files inside a base directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at the vaultbak config directory.
func NewStore() (*Store, error) {
	dir, err := application.ConfigDir()
	if err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

// NewStoreAt returns a store rooted at an explicit directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the value for key. The second return is false when the key
// has never been saved.
func (s *Store) Load(key string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to read config %q: %w", key, err)
	}

	return strings.TrimSpace(string(data)), true, nil
}

// Save writes the value for key, creating the config directory if needed
// and overwriting any prior value.
func (s *Store) Save(key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, []byte(value+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write config %q: %w", key, err)
	}

	return nil
}
