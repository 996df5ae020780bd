package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/core/ports/driving"
	"github.com/mediadex/mediadex/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultMaxUploadBytes caps upload size at 100 MiB.
const DefaultMaxUploadBytes = 100 << 20

// IngestService runs the ingestion pipeline: hash, dedup, extract,
// chunk, persist, index.
type IngestService struct {
	registry  driven.ExtractorRegistry
	chunker   driven.Chunker
	fileStore driven.FileStore
	blobStore driven.BlobStore
	index     driven.SearchIndex

	maxUploadBytes int64
	now            func() time.Time
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithMaxUploadBytes overrides the upload size ceiling.
func WithMaxUploadBytes(n int64) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) IngestOption {
	return func(s *IngestService) {
		s.now = now
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	registry driven.ExtractorRegistry,
	chunker driven.Chunker,
	fileStore driven.FileStore,
	blobStore driven.BlobStore,
	index driven.SearchIndex,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		registry:       registry,
		chunker:        chunker,
		fileStore:      fileStore,
		blobStore:      blobStore,
		index:          index,
		maxUploadBytes: DefaultMaxUploadBytes,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest processes one uploaded file. Identical content is detected by
// hash before any extraction work and only refreshes the last-seen
// timestamp. Extraction failures are absorbed into the record's status;
// the file stays listed and searchable by filename.
func (s *IngestService) Ingest(ctx context.Context, kind domain.FileKind, filename string, content []byte) (*domain.FileSummary, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	if filename == "" || len(content) == 0 {
		return nil, fmt.Errorf("%w: filename and content are required", domain.ErrInvalidInput)
	}
	if int64(len(content)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", domain.ErrOversizeInput, len(content), s.maxUploadBytes)
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.fileStore.Get(ctx, hash)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking for duplicate: %w", err)
	}
	if existing != nil {
		logger.Debug("Duplicate upload of %s (%s), touching last seen", filename, shortHash(hash))
		if err := s.fileStore.TouchLastSeen(ctx, hash, s.now()); err != nil {
			return nil, fmt.Errorf("touching last seen: %w", err)
		}
		chunks, err := s.fileStore.GetChunks(ctx, hash)
		if err != nil {
			return nil, fmt.Errorf("loading chunks: %w", err)
		}
		summary := existing.Summary(len(chunks))
		return &summary, nil
	}

	raw := &domain.RawMedia{Kind: kind, Filename: filename, Content: content}
	extraction, err := s.registry.Extract(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}
	if extraction.Status != domain.ExtractionSuccess {
		logger.Warn("Extraction %s for %s: %s", extraction.Status, filename, extraction.Diagnostic)
	}

	chunks := s.chunker.Chunk(hash, extraction.Text, extraction.Transcript)

	storagePath, err := s.blobStore.Save(ctx, hash, kind, filename, content)
	if err != nil {
		return nil, fmt.Errorf("saving blob: %w", err)
	}

	now := s.now()
	record := &domain.FileRecord{
		Hash:        hash,
		Name:        filename,
		Kind:        kind,
		Size:        int64(len(content)),
		StoragePath: storagePath,
		UploadedAt:  now,
		LastSeenAt:  now,
		Extraction:  *extraction,
	}

	if err := s.fileStore.Put(ctx, record, chunks); err != nil {
		if delErr := s.blobStore.Delete(ctx, storagePath); delErr != nil {
			logger.Warn("Orphaned blob %s after failed put: %v", storagePath, delErr)
		}
		return nil, fmt.Errorf("storing record: %w", err)
	}

	if err := s.index.Update(ctx, record, chunks); err != nil {
		return nil, fmt.Errorf("indexing %s: %w", filename, err)
	}

	logger.Info("Ingested %s kind=%s hash=%s chunks=%d status=%s",
		filename, kind, shortHash(hash), len(chunks), extraction.Status)

	summary := record.Summary(len(chunks))
	return &summary, nil
}

// shortHash abbreviates a hash for log output.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
