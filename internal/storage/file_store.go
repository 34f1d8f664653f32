package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// FileStore is a Store backed by an afero filesystem rooted at a directory.
// Production wiring uses afero.NewOsFs(); tests substitute afero.NewMemMapFs().
type FileStore struct {
	fs   afero.Fs
	root string
}

// NewFileStore creates a FileStore writing beneath root on the given
// filesystem.
func NewFileStore(fs afero.Fs, root string) *FileStore {
	return &FileStore{
		fs:   fs,
		root: root,
	}
}

// Save persists data under a generated unique name within the namespace and
// returns the object path ("products/<uuid>.<ext>"). The extension is sniffed
// from the content.
func (s *FileStore) Save(data []byte, namespace string) (string, error) {
	ext := mimetype.Detect(data).Extension()

	// The uuid makes collisions vanishingly rare, but the contract is to
	// never overwrite, so the name is re-rolled if it is somehow taken.
	for attempt := 0; attempt < 3; attempt++ {
		objectPath := path.Join(namespace, uuid.New().String()+ext)
		full := s.fullPath(objectPath)

		if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return "", fmt.Errorf("%w: creating %s: %v", ErrUnavailable, namespace, err)
		}

		taken, err := afero.Exists(s.fs, full)
		if err != nil {
			return "", fmt.Errorf("%w: checking %s: %v", ErrUnavailable, objectPath, err)
		}
		if taken {
			continue
		}

		if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
			return "", fmt.Errorf("%w: writing %s: %v", ErrUnavailable, objectPath, err)
		}
		return objectPath, nil
	}
	return "", fmt.Errorf("%w: could not allocate a unique name in %s", ErrUnavailable, namespace)
}

// Delete removes the object at path. Deleting a path that does not exist is
// a no-op, not an error.
func (s *FileStore) Delete(objectPath string) error {
	err := s.fs.Remove(s.fullPath(objectPath))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: deleting %s: %v", ErrUnavailable, objectPath, err)
	}
	return nil
}

// Exists reports whether an object is stored at path.
func (s *FileStore) Exists(objectPath string) (bool, error) {
	ok, err := afero.Exists(s.fs, s.fullPath(objectPath))
	if err != nil {
		return false, fmt.Errorf("%w: checking %s: %v", ErrUnavailable, objectPath, err)
	}
	return ok, nil
}

func (s *FileStore) fullPath(objectPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(objectPath))
}
