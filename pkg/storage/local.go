package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage keeps photos in a directory on disk
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates the directory if needed
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes the photo; a partially written file is removed on failure
func (s *LocalStorage) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create photo file: %w", err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write photo file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close photo file: %w", err)
	}
	return nil
}

// Open returns the stored photo
func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open photo file: %w", err)
	}
	return file, nil
}

// Delete removes the photo; a missing file is not an error
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete photo file: %w", err)
	}
	return nil
}
