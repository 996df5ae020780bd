// Package index provides the in-memory inverted index used for keyword
// search. The index is derived entirely from the file store and is
// rebuilt at startup; it is never the source of truth.
package index

import (
	"context"
	"sort"
	"sync"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

type chunkKey struct {
	hash  string
	index int
}

// state is one immutable-by-convention generation of the index.
// Rebuild constructs a fresh state off to the side and swaps it in
// under the write lock, so readers see pre- or post-rebuild state only.
type state struct {
	// postings maps term -> chunk -> occurrence count.
	postings map[string]map[chunkKey]int

	// names maps filename term -> set of file hashes.
	names map[string]map[string]struct{}

	// fileTerms tracks which terms each hash contributed, for Remove.
	fileTerms map[string][]string

	// fileNameTerms tracks filename terms per hash, for Remove.
	fileNameTerms map[string][]string
}

func newState() *state {
	return &state{
		postings:      make(map[string]map[chunkKey]int),
		names:         make(map[string]map[string]struct{}),
		fileTerms:     make(map[string][]string),
		fileNameTerms: make(map[string][]string),
	}
}

// Index is an in-memory inverted index over file chunks and filenames.
type Index struct {
	mu sync.RWMutex
	st *state
}

// New creates an empty index.
func New() *Index {
	return &Index{st: newState()}
}

// Update folds a file's chunks into the index, replacing any previous
// entries for the same hash.
func (ix *Index) Update(_ context.Context, record *domain.FileRecord, chunks []domain.Chunk) error {
	if record == nil {
		return domain.ErrInvalidInput
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.st.remove(record.Hash)
	ix.st.add(record, chunks)
	return nil
}

// Remove purges all entries referencing the hash.
func (ix *Index) Remove(_ context.Context, hash string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.st.remove(hash)
	return nil
}

// Rebuild reconstructs the index from scratch and swaps the replacement
// in as one atomic step.
func (ix *Index) Rebuild(_ context.Context, files []driven.IndexedFile) error {
	next := newState()
	for i := range files {
		next.add(&files[i].Record, files[i].Chunks)
	}

	ix.mu.Lock()
	ix.st = next
	ix.mu.Unlock()

	logger.Debug("Index rebuilt: %d files, %d terms", len(files), len(next.postings))
	return nil
}

// Lookup returns postings for a normalised term, ordered by hash then
// chunk index for deterministic results.
func (ix *Index) Lookup(_ context.Context, term string) ([]driven.Posting, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	byChunk := ix.st.postings[term]
	if len(byChunk) == 0 {
		return nil, nil
	}

	postings := make([]driven.Posting, 0, len(byChunk))
	for key, freq := range byChunk {
		postings = append(postings, driven.Posting{
			FileHash:   key.hash,
			ChunkIndex: key.index,
			Frequency:  freq,
		})
	}

	sort.Slice(postings, func(i, j int) bool {
		if postings[i].FileHash != postings[j].FileHash {
			return postings[i].FileHash < postings[j].FileHash
		}
		return postings[i].ChunkIndex < postings[j].ChunkIndex
	})

	return postings, nil
}

// LookupName returns hashes of files whose filename contains the term,
// in sorted order.
func (ix *Index) LookupName(_ context.Context, term string) ([]string, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	set := ix.st.names[term]
	if len(set) == 0 {
		return nil, nil
	}

	hashes := make([]string, 0, len(set))
	for h := range set {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	return hashes, nil
}

// add folds one file into the state. Caller holds the write lock or
// owns the state exclusively.
func (s *state) add(record *domain.FileRecord, chunks []domain.Chunk) {
	seen := make(map[string]struct{})

	for _, chunk := range chunks {
		key := chunkKey{hash: record.Hash, index: chunk.Index}
		for term, freq := range TermFrequencies(chunk.Text) {
			byChunk := s.postings[term]
			if byChunk == nil {
				byChunk = make(map[chunkKey]int)
				s.postings[term] = byChunk
			}
			byChunk[key] = freq

			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				s.fileTerms[record.Hash] = append(s.fileTerms[record.Hash], term)
			}
		}
	}

	for _, term := range Normalize(record.Name) {
		set := s.names[term]
		if set == nil {
			set = make(map[string]struct{})
			s.names[term] = set
		}
		if _, ok := set[record.Hash]; !ok {
			set[record.Hash] = struct{}{}
			s.fileNameTerms[record.Hash] = append(s.fileNameTerms[record.Hash], term)
		}
	}
}

// remove purges one hash from the state. Caller holds the write lock.
func (s *state) remove(hash string) {
	for _, term := range s.fileTerms[hash] {
		byChunk := s.postings[term]
		for key := range byChunk {
			if key.hash == hash {
				delete(byChunk, key)
			}
		}
		if len(byChunk) == 0 {
			delete(s.postings, term)
		}
	}
	delete(s.fileTerms, hash)

	for _, term := range s.fileNameTerms[hash] {
		set := s.names[term]
		delete(set, hash)
		if len(set) == 0 {
			delete(s.names, term)
		}
	}
	delete(s.fileNameTerms, hash)
}
