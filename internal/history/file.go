package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the recent list as a JSON file. It is the terminal
// client's equivalent of the browser's local storage key. Writes are
// read-then-write without cross-process locking; concurrent processes
// race with last write wins.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the conventional location for the recent-links
// file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}

	return filepath.Join(dir, "shortpanel", "recent.json"), nil
}

// Load reads the persisted list. A missing file is an empty list.
func (s *FileStore) Load() (List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return List{}, nil
		}

		return nil, fmt.Errorf("read history: %w", err)
	}

	var list List
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	return list, nil
}

// Save writes the list, creating the parent directory if needed.
func (s *FileStore) Save(list List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}

	return nil
}
