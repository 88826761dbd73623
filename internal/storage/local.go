package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs under a single root directory on disk.
// Directories are created 0700 so stored files are private to the service
// user; nothing under the root is served directly.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root not configured")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) resolve(name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob path %q", name)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Write implements BlobStore.
func (s *LocalStore) Write(name string, data []byte) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o600); err != nil {
		return fmt.Errorf("failed to write blob %q: %w", name, err)
	}
	return nil
}

// Read implements BlobStore.
func (s *LocalStore) Read(name string) ([]byte, error) {
	full, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %q: %w", name, err)
	}
	return data, nil
}

// Exists implements BlobStore.
func (s *LocalStore) Exists(name string) bool {
	full, err := s.resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}
