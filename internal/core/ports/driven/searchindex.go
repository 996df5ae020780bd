package driven

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// Posting locates one occurrence set of a term: the chunk it appears in
// and how often.
type Posting struct {
	// FileHash identifies the owning file.
	FileHash string

	// ChunkIndex is the chunk's position within the file.
	ChunkIndex int

	// Frequency is the term's occurrence count in that chunk.
	Frequency int
}

// IndexedFile pairs a record with its chunks for bulk index rebuilds.
type IndexedFile struct {
	Record domain.FileRecord
	Chunks []domain.Chunk
}

// SearchIndex maps normalised terms to the chunks containing them.
// It is derived entirely from the FileStore and rebuildable at any time;
// it is never the source of truth.
//
// Concurrent reads during Rebuild must observe either the pre-rebuild or
// post-rebuild state atomically, never a partially-rebuilt index.
type SearchIndex interface {
	// Update folds a file's chunks into the index, replacing any
	// previous entries for the same hash.
	Update(ctx context.Context, record *domain.FileRecord, chunks []domain.Chunk) error

	// Remove purges all entries referencing the hash.
	Remove(ctx context.Context, hash string) error

	// Rebuild reconstructs the index from scratch, swapping the
	// replacement in as one atomic step.
	Rebuild(ctx context.Context, files []IndexedFile) error

	// Lookup returns postings for a normalised term.
	Lookup(ctx context.Context, term string) ([]Posting, error)

	// LookupName returns hashes of files whose filename contains the
	// normalised term. Supports metadata-only matches for files with
	// no extracted text.
	LookupName(ctx context.Context, term string) ([]string, error)
}
