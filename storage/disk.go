/*
	Local disk blob storage.

	Every upload lands under a freshly generated path inside a
	single flat directory; paths are never reused or rewritten.
*/
package storage

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Storage struct {
	root string
}

// Creates the storage directory if missing
// and returns storage object
func InitStorage(root string) (*Storage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &Storage{root: root}, nil
}

// Save writes data under a random path and returns that path.
// O_EXCL guards the write-once rule, a generated path that
// somehow already exists is an error rather than an overwrite.
func (s *Storage) Save(data []byte) (string, error) {
	path := filepath.Join(s.root, uuid.New().String())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}

	if _, err = f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}

	if err = f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

func (s *Storage) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Removes the blob behind path, used to back out of a failed upload
func (s *Storage) Remove(path string) error {
	return os.Remove(path)
}
