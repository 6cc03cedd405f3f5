package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourorg/canteen-companion/internal/model"
)

// Storage persists cart snapshots between runs.
type Storage interface {
	Load() ([]model.CartLine, error)
	Save(lines []model.CartLine) error
}

// FileStorage keeps the snapshot in a JSON file under the user's config
// directory. Writes are best-effort; a crash mid-write just means the next
// run rehydrates the previous snapshot.
type FileStorage struct {
	path string
}

// NewFileStorage creates a FileStorage rooted at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// snapshotFile serializes the lines under the same well-known "cart" key the
// web client uses in browser storage.
type snapshotFile struct {
	Cart []model.CartLine `json:"cart"`
}

// Load reads the last saved snapshot. A missing file is an empty cart.
func (s *FileStorage) Load() ([]model.CartLine, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse cart snapshot: %w", err)
	}
	return snap.Cart, nil
}

// Save writes the snapshot atomically: marshal, write to a temp file, rename.
func (s *FileStorage) Save(lines []model.CartLine) error {
	data, err := json.Marshal(snapshotFile{Cart: lines})
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cart snapshot: %w", err)
	}
	return nil
}
