package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"code.sajari.com/docconv/v2"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents via docconv.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the media kind this extractor handles.
func (e *Extractor) Kind() domain.FileKind {
	return domain.KindDocument
}

// SupportedExtensions returns the filename extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific extractor
}

// Extract parses the PDF and returns its text content.
// Parser failure degrades to a failed result with a diagnostic; the
// file stays recorded and searchable by filename.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	res, err := docconv.Convert(bytes.NewReader(raw.Content), "application/pdf", true)
	if err != nil {
		return &domain.ExtractionResult{
			Status:     domain.ExtractionFailed,
			Diagnostic: fmt.Sprintf("pdf parse: %v", err),
		}, nil
	}

	text := strings.TrimSpace(res.Body)
	info := domain.MediaInfo{
		WordCount: len(strings.Fields(text)),
	}
	if pages, ok := res.Meta["Pages"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(pages)); err == nil {
			info.PageCount = n
		}
	}

	return &domain.ExtractionResult{
		Text:   text,
		Info:   info,
		Status: domain.ExtractionSuccess,
	}, nil
}
