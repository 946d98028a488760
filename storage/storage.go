// Package storage is the durable client-side storage used for session state.
// Objects are small byte blobs addressed by key.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Download when no object exists for the key.
var ErrNotFound = errors.New("storage: object not found")

// Storage defines the object storage operations.
type Storage interface {
	// Upload writes reader's content under key, replacing any previous object.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download opens the object under key. The caller closes the reader.
	// Returns ErrNotFound when the key is absent.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// ReadAll downloads key and returns its content.
func ReadAll(ctx context.Context, s Storage, key string) ([]byte, error) {
	rc, err := s.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only handle
	return io.ReadAll(rc)
}
