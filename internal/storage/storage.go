package storage

import (
	"context"
	"io"
)

// Storage is the file-store abstraction the upload pipeline talks to.
// Paths are storage-relative; callers decide the naming scheme.
type Storage interface {
	// Save stores a file at the given path.
	Save(ctx context.Context, path string, reader io.Reader) error

	// Get retrieves a file from the given path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadAll reads the whole content of a file.
	ReadAll(ctx context.Context, path string) ([]byte, error)

	// Delete removes a file. Deleting an absent file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns the public URL for a stored file.
	GetURL(path string) string

	// GetSize returns the size of a file in bytes.
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config holds storage configuration.
type Config struct {
	BasePath string // filesystem root for stored files
	BaseURL  string // public URL base the files are served under
}
