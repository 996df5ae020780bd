package driven

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// BlobStore persists raw file bytes under a path derived from the
// content hash and kind. Saving the same hash twice must not duplicate
// storage.
type BlobStore interface {
	// Save writes the raw bytes if not already present and returns
	// the storage path. The original filename supplies the extension.
	// Saving an existing hash is a no-op that returns the existing
	// path.
	Save(ctx context.Context, hash string, kind domain.FileKind, filename string, content []byte) (string, error)

	// Delete removes the blob at the given storage path.
	// Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
