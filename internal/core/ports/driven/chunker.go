package driven

import "github.com/mediadex/mediadex/internal/core/domain"

// Chunker splits extracted text into bounded, ordered units for search.
// Implementations must be deterministic: identical input always yields
// the identical chunk sequence, so reindexing is reproducible.
type Chunker interface {
	// Chunk splits text into ordered chunks owned by fileHash.
	// When transcript is non-nil, chunk boundaries align to utterance
	// boundaries and chunks carry start/end time offsets.
	// Empty text yields an empty sequence.
	Chunk(fileHash, text string, transcript *domain.Transcript) []domain.Chunk
}
