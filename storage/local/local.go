// Package local stores objects as files under a base directory. Importing it
// registers the "local" provider with storage.New.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderLocal, func(cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		s, err := New(Config{BasePath: cfg.BasePath})
		if err != nil {
			return nil, err
		}
		log.Debug("local storage ready", logger.Fields("base_path", s.basePath))
		return s, nil
	})
}

// Storage implements storage.Storage on the local filesystem.
type Storage struct {
	basePath string
	mode     fs.FileMode
}

var _ storage.Storage = (*Storage)(nil)

// New creates the base directory if needed and returns the store.
func New(cfg Config) (*Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("local: resolve base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, fmt.Errorf("local: create base directory: %w", err)
	}
	return &Storage{basePath: abs, mode: fs.FileMode(cfg.FileMode)}, nil
}

// BasePath returns the absolute root directory.
func (s *Storage) BasePath() string { return s.basePath }

// Upload writes to a temp file and renames it over the target, so a reader
// never sees a partial object.
func (s *Storage) Upload(_ context.Context, key string, reader io.Reader) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("local: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("local: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := io.Copy(tmp, reader); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("local: write %s: %w", key, err)
	}
	if err := tmp.Chmod(s.mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("local: chmod %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("local: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("local: rename %s: %w", key, err)
	}
	return nil
}

// Download opens the file stored under key.
func (s *Storage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("local: open %s: %w", key, err)
	}
	return f, nil
}

// Delete removes the file. A missing file is not an error.
func (s *Storage) Delete(_ context.Context, key string) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local: delete %s: %w", key, err)
	}
	return nil
}

// Exists reports whether a regular file is stored under key.
func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	full, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("local: stat %s: %w", key, err)
	}
	return info.Mode().IsRegular(), nil
}

// resolve maps key to a path inside basePath and rejects keys that escape it.
func (s *Storage) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("local: empty key")
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("local: key %q escapes base path", key)
	}
	return full, nil
}
