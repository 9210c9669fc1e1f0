package storage

import (
	"context"
	"io"
)

// FileStorage persists attendance selfies and claim receipt photos.
type FileStorage interface {
	// Upload stores a file and returns the storage key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for a stored file.
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
