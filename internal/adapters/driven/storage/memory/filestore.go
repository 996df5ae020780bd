// Package memory provides an in-memory FileStore for tests and
// ephemeral runs. Not durable; production uses the sqlite package.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore.
type FileStore struct {
	mu      sync.RWMutex
	records map[string]domain.FileRecord
	chunks  map[string][]domain.Chunk
}

// NewFileStore creates an empty in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		records: make(map[string]domain.FileRecord),
		chunks:  make(map[string][]domain.Chunk),
	}
}

// Put stores a record and its chunks, replacing any previous entry.
func (s *FileStore) Put(_ context.Context, record *domain.FileRecord, chunks []domain.Chunk) error {
	if record == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Hash] = *record
	s.chunks[record.Hash] = append([]domain.Chunk(nil), chunks...)
	return nil
}

// Get retrieves a record by content hash.
func (s *FileStore) Get(_ context.Context, hash string) (*domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[hash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// GetChunks retrieves a file's chunks in index order.
func (s *FileStore) GetChunks(_ context.Context, hash string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := append([]domain.Chunk(nil), s.chunks[hash]...)
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	return chunks, nil
}

// List returns records, optionally filtered by kind, newest first.
func (s *FileStore) List(_ context.Context, kind domain.FileKind) ([]domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.FileRecord, 0, len(s.records))
	for _, r := range s.records {
		if kind != "" && r.Kind != kind {
			continue
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].UploadedAt.Equal(records[j].UploadedAt) {
			return records[i].UploadedAt.After(records[j].UploadedAt)
		}
		return records[i].Hash < records[j].Hash
	})
	return records, nil
}

// TouchLastSeen updates a record's last-seen timestamp.
func (s *FileStore) TouchLastSeen(_ context.Context, hash string, seen time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[hash]
	if !ok {
		return domain.ErrNotFound
	}
	record.LastSeenAt = seen
	s.records[hash] = record
	return nil
}

// Delete removes a record and its chunks.
func (s *FileStore) Delete(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[hash]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, hash)
	delete(s.chunks, hash)
	return nil
}
