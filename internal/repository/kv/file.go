package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Store defines keyed blob persistence.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// FileStore keeps every key in its own file inside a directory.
type FileStore struct {
	// dir is the directory holding the key files.
	dir string
	// mu serializes writers so concurrent Puts cannot interleave renames.
	mu sync.Mutex
}

const (
	// fileExtension is appended to a key to build its file name.
	fileExtension = ".bin"

	// DefaultFilePermissions is used for key files.
	DefaultFilePermissions = 0o600

	// DefaultDirPermissions is used when the data directory is created.
	DefaultDirPermissions = 0o700
)

var (
	// ErrNotFound is returned when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys that cannot be used as file names.
	ErrInvalidKey = errors.New("invalid key")

	validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// NewFileStore creates a store rooted at dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	dir = filepath.Clean(dir)

	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &FileStore{
		dir: dir,
	}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	return contents, nil
}

// Put replaces the value stored under key atomically.
func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}

	tmpName := tmp.Name()

	// The temp file is removed on any failure below; after a successful
	// rename the name no longer exists and Remove is a no-op.
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", key, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}

	if err = os.Chmod(tmpName, DefaultFilePermissions); err != nil {
		return fmt.Errorf("chmod %s: %w", key, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}

	return nil
}

// path maps a key to its file path.
func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(s.dir, key+fileExtension), nil
}
