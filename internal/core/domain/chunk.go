package domain

import (
	"fmt"
	"strings"
)

// Chunk is a bounded, ordered unit of extracted text.
// It is the atomic item for search matching. Chunks are derived from a
// FileRecord's extraction and may be regenerated when the chunking
// strategy changes.
type Chunk struct {
	// ID is "<hash>:<index>", stable across reindexing.
	ID string

	// FileHash links to the owning FileRecord.
	FileHash string

	// Index is the ordinal position within the file. Concatenating
	// chunks in index order reproduces the extracted text.
	Index int

	// Text is the chunk's text span.
	Text string

	// StartSec and EndSec are media time offsets for transcript
	// chunks. Meaningful only when Timed is true.
	StartSec float64
	EndSec   float64
	Timed    bool
}

// ChunkID builds the canonical chunk identifier.
func ChunkID(hash string, index int) string {
	return fmt.Sprintf("%s:%d", hash, index)
}

// JoinChunks reassembles extracted text from ordered chunks.
func JoinChunks(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}
