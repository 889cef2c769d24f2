// Package storage implements the attachment blob store on the local
// filesystem. Blobs are addressed by paths relative to a single configured
// root so the root can move without rewriting any records.
package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore stores attachment content under a root directory
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at dir, creating it if absent
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Root returns the absolute storage root directory
func (s *LocalStore) Root() string {
	return s.root
}

// resolve maps a root-relative key to an absolute path, rejecting keys that
// would escape the root.
func (s *LocalStore) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty storage key")
	}
	if filepath.IsAbs(key) {
		return "", fmt.Errorf("storage key must be relative: %s", key)
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("storage key escapes root: %s", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Rel converts an absolute path inside the root to a storage key.
// Paths outside the root are rejected.
func (s *LocalStore) Rel(abs string) (string, error) {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", fmt.Errorf("path is not under storage root: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside storage root %s", abs, s.root)
	}
	return filepath.ToSlash(rel), nil
}

// Save writes content to the given key, creating parent directories on demand
func (s *LocalStore) Save(key string, r io.Reader) (int64, error) {
	dest, err := s.resolve(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create attachment directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create attachment file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(dest)
		return 0, fmt.Errorf("failed to write attachment file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close attachment file: %w", err)
	}
	return n, nil
}

// Open returns a reader over the content at key
func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Exists reports whether content exists at key
func (s *LocalStore) Exists(key string) bool {
	path, err := s.resolve(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes the content at key. Returns os.ErrNotExist (wrapped) when
// the file is already gone; callers decide whether that is tolerable.
func (s *LocalStore) Remove(key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	// Drop the per-todo directory once it empties out; best effort.
	_ = removeEmptyParent(s.root, filepath.Dir(path))
	return nil
}

func removeEmptyParent(root, dir string) error {
	if dir == root {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return err
	}
	return os.Remove(dir)
}

// Walk calls fn for every stored file with its key and file info
func (s *LocalStore) Walk(fn func(key string, info fs.FileInfo) error) error {
	return filepath.Walk(s.root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		key, err := s.Rel(path)
		if err != nil {
			return err
		}
		return fn(key, info)
	})
}
