package driving

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// IngestService runs the full ingestion pipeline: extraction, chunking,
// durable storage and index update. When Ingest returns successfully the
// file is observable by any subsequent Search call.
type IngestService interface {
	// Ingest processes one uploaded file. Re-ingesting identical
	// bytes is idempotent and reports the same hash.
	//
	// Pre-condition violations (unknown kind, oversize input, store
	// write failure) surface as errors; extraction failures do not -
	// they are recorded in the returned summary's status.
	Ingest(ctx context.Context, kind domain.FileKind, filename string, content []byte) (*domain.FileSummary, error)
}
