// Package storage keeps uploaded user photos on local disk or in MinIO.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned when a stored photo does not exist
var ErrObjectNotFound = errors.New("object not found in storage")

// PhotoStorage stores uploaded photos under unique names
type PhotoStorage interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsAllowedImage reports whether the file name carries an accepted image extension
func IsAllowedImage(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// NewPhotoName returns a unique object name keeping the original extension
func NewPhotoName(originalFilename string) string {
	return "photo_" + uuid.NewString() + strings.ToLower(filepath.Ext(originalFilename))
}

// cleanName rejects names that could escape the storage root
func cleanName(name string) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || base == "" {
		return "", ErrObjectNotFound
	}
	return base, nil
}
