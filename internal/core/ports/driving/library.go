package driving

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// LibraryService manages the catalogue of ingested files.
type LibraryService interface {
	// List returns summaries, optionally filtered by kind.
	// An empty kind means all files.
	List(ctx context.Context, kind domain.FileKind) ([]domain.FileSummary, error)

	// Get returns the full detail for a hash.
	Get(ctx context.Context, hash string) (*domain.FileDetail, error)

	// Delete removes a file's record, raw bytes and index entries.
	Delete(ctx context.Context, hash string) error

	// Reindex rebuilds the search index from the file store.
	Reindex(ctx context.Context) error
}
