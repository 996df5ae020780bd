package plaintext

import (
	"context"
	"strings"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. It is the fallback for the
// document kind: any extension without a format-specific extractor is
// treated as text and used verbatim.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the media kind this extractor handles.
func (e *Extractor) Kind() domain.FileKind {
	return domain.KindDocument
}

// SupportedExtensions returns nil: this is the document fallback.
func (e *Extractor) SupportedExtensions() []string {
	return nil
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract uses the raw bytes verbatim as text.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := strings.ToValidUTF8(string(raw.Content), "")

	return &domain.ExtractionResult{
		Text: text,
		Info: domain.MediaInfo{
			WordCount: len(strings.Fields(text)),
		},
		Status: domain.ExtractionSuccess,
	}, nil
}
