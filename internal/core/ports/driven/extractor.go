package driven

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// Extractor converts raw media bytes into plain text plus metadata.
// Each extractor handles one media kind, optionally narrowed to specific
// filename extensions.
type Extractor interface {
	// Kind returns the media kind this extractor handles.
	Kind() domain.FileKind

	// SupportedExtensions returns the filename extensions (with dot,
	// lowercase) this extractor handles. Empty slice means every
	// extension of its kind.
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Kind-level fallback extractors should return 1-9.
	Priority() int

	// Extract converts raw bytes into an extraction result.
	// Parse failures are reported inside the result (status=failed
	// with a diagnostic), not as an error: the error return is for
	// context cancellation and programmer mistakes only.
	Extract(ctx context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error)
}

// ExtractorRegistry selects the appropriate extractor for a file.
// It maintains a priority-ordered set of extractors and dispatches on
// kind and filename extension.
type ExtractorRegistry interface {
	// Extract runs the best matching extractor.
	// Selection priority: extension-specific > kind fallback.
	Extract(ctx context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)
}
