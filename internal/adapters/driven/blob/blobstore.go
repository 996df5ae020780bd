// Package blob stores raw uploaded bytes on the filesystem.
//
// Blobs live under <root>/<kind>s/<hash><ext>. The hash-derived name
// makes writes idempotent: saving content that is already present is a
// no-op.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Store is a filesystem-backed blob store.
type Store struct {
	root string
}

// NewStore creates a blob store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Save writes the raw bytes if not already present and returns the
// storage path.
func (s *Store) Save(_ context.Context, hash string, kind domain.FileKind, filename string, content []byte) (string, error) {
	dir := filepath.Join(s.root, string(kind)+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating blob dir: %w", err)
	}

	path := filepath.Join(dir, hash+strings.ToLower(filepath.Ext(filename)))
	if _, err := os.Stat(path); err == nil {
		logger.Debug("Blob already present at %s", path)
		return path, nil
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("placing blob: %w", err)
	}
	return path, nil
}

// Delete removes the blob at the given storage path. Missing blobs are
// not an error.
func (s *Store) Delete(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}
