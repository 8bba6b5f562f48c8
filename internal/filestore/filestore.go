// Package filestore persists attachment bytes on local disk. The entity
// store keeps only metadata; the returned path is relative to the store root
// and is what callers hand back for deletion.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores files under a root directory on disk.
type Local struct {
	root string
}

// NewLocal creates a file store rooted at dir, creating it if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create file store root: %w", err)
	}
	return &Local{root: dir}, nil
}

// Save writes the reader's bytes under key and returns the stored path and
// byte count. Keys may contain forward slashes for grouping; keys that would
// escape the root are rejected.
func (s *Local) Save(ctx context.Context, key string, r io.Reader) (string, int64, error) {
	rel, err := s.safePath(key)
	if err != nil {
		return "", 0, err
	}

	full := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create attachment directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(full)
		return "", 0, fmt.Errorf("failed to write attachment: %w", err)
	}
	return rel, size, nil
}

// Delete removes a stored file by the path Save returned. Deleting a path
// that no longer exists is not an error.
func (s *Local) Delete(ctx context.Context, path string) error {
	rel, err := s.safePath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

func (s *Local) safePath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty file key")
	}
	rel := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file key %q escapes store root", key)
	}
	return rel, nil
}
