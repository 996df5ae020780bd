package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/core/ports/driving"
	"github.com/mediadex/mediadex/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// previewRunes caps the text preview in file detail views.
const previewRunes = 500

// LibraryService manages the catalogue of ingested files.
type LibraryService struct {
	fileStore driven.FileStore
	blobStore driven.BlobStore
	index     driven.SearchIndex
}

// NewLibraryService creates a new library service.
func NewLibraryService(fileStore driven.FileStore, blobStore driven.BlobStore, index driven.SearchIndex) *LibraryService {
	return &LibraryService{
		fileStore: fileStore,
		blobStore: blobStore,
		index:     index,
	}
}

// List returns summaries, optionally filtered by kind.
func (s *LibraryService) List(ctx context.Context, kind domain.FileKind) ([]domain.FileSummary, error) {
	records, err := s.fileStore.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	summaries := make([]domain.FileSummary, 0, len(records))
	for i := range records {
		chunks, err := s.fileStore.GetChunks(ctx, records[i].Hash)
		if err != nil {
			return nil, fmt.Errorf("loading chunks for %s: %w", shortHash(records[i].Hash), err)
		}
		summaries = append(summaries, records[i].Summary(len(chunks)))
	}
	return summaries, nil
}

// Get returns the full detail for a hash.
func (s *LibraryService) Get(ctx context.Context, hash string) (*domain.FileDetail, error) {
	record, err := s.fileStore.Get(ctx, hash)
	if err != nil {
		return nil, err
	}

	chunks, err := s.fileStore.GetChunks(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	return &domain.FileDetail{
		FileSummary: record.Summary(len(chunks)),
		StoragePath: record.StoragePath,
		LastSeenAt:  record.LastSeenAt,
		Info:        record.Extraction.Info,
		Diagnostic:  record.Extraction.Diagnostic,
		TextPreview: truncateRunes(record.Extraction.Text, previewRunes),
	}, nil
}

// Delete removes a file's record, raw bytes and index entries.
// The durable record is removed first; a blob left behind by a failed
// cleanup is unreferenced, never the other way round.
func (s *LibraryService) Delete(ctx context.Context, hash string) error {
	record, err := s.fileStore.Get(ctx, hash)
	if err != nil {
		return err
	}

	if err := s.fileStore.Delete(ctx, hash); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	if err := s.index.Remove(ctx, hash); err != nil {
		return fmt.Errorf("removing from index: %w", err)
	}

	if err := s.blobStore.Delete(ctx, record.StoragePath); err != nil {
		logger.Warn("Leaving orphaned blob %s: %v", record.StoragePath, err)
	}

	logger.Info("Deleted %s (%s)", record.Name, shortHash(hash))
	return nil
}

// Reindex rebuilds the search index from the file store.
func (s *LibraryService) Reindex(ctx context.Context) error {
	records, err := s.fileStore.List(ctx, "")
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}

	files := make([]driven.IndexedFile, 0, len(records))
	for i := range records {
		chunks, err := s.fileStore.GetChunks(ctx, records[i].Hash)
		if err != nil {
			return fmt.Errorf("loading chunks for %s: %w", shortHash(records[i].Hash), err)
		}
		files = append(files, driven.IndexedFile{Record: records[i], Chunks: chunks})
	}

	if err := s.index.Rebuild(ctx, files); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	logger.Info("Reindexed %d files", len(files))
	return nil
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
