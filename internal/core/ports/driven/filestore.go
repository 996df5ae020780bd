package driven

import (
	"context"
	"time"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// FileStore persists file records and their chunks.
// Backed by SQLite for durable metadata storage: every mutation is
// written through before the call returns.
type FileStore interface {
	// Put stores a record and its chunks. A Put for an existing hash
	// replaces the record and chunks (the content is identical by
	// definition of the hash, so this is idempotent).
	Put(ctx context.Context, record *domain.FileRecord, chunks []domain.Chunk) error

	// Get retrieves a record by content hash.
	// Returns domain.ErrNotFound for unknown hashes.
	Get(ctx context.Context, hash string) (*domain.FileRecord, error)

	// GetChunks retrieves a file's chunks in index order.
	GetChunks(ctx context.Context, hash string) ([]domain.Chunk, error)

	// List returns records, optionally filtered by kind.
	// An empty kind means all records.
	List(ctx context.Context, kind domain.FileKind) ([]domain.FileRecord, error)

	// TouchLastSeen updates a record's last-seen timestamp.
	// Used on re-upload of identical content.
	TouchLastSeen(ctx context.Context, hash string, seen time.Time) error

	// Delete removes a record and its chunks.
	// Returns domain.ErrNotFound for unknown hashes.
	Delete(ctx context.Context, hash string) error
}
