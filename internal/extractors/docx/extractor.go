package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents by reading word/document.xml from
// the ZIP container.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the media kind this extractor handles.
func (e *Extractor) Kind() domain.FileKind {
	return domain.KindDocument
}

// SupportedExtensions returns the filename extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".docx"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific extractor
}

// Extract parses the DOCX container and returns its text content.
// Container or XML failure degrades to a failed result with a
// diagnostic rather than an error.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return &domain.ExtractionResult{
			Status:     domain.ExtractionFailed,
			Diagnostic: fmt.Sprintf("docx container: %v", err),
		}, nil
	}

	text, paragraphs, err := extractDocumentText(reader)
	if err != nil {
		return &domain.ExtractionResult{
			Status:     domain.ExtractionFailed,
			Diagnostic: fmt.Sprintf("docx document.xml: %v", err),
		}, nil
	}

	return &domain.ExtractionResult{
		Text: text,
		Info: domain.MediaInfo{
			PageCount: paragraphs,
			WordCount: len(strings.Fields(text)),
		},
		Status: domain.ExtractionSuccess,
	}, nil
}

// extractDocumentText extracts text from word/document.xml and reports
// the paragraph count.
func extractDocumentText(reader *zip.Reader) (string, int, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", 0, err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", 0, err
		}

		return parseDocumentXML(content)
	}
	return "", 0, nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) (string, int, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", 0, err
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, text := range r.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String()), len(doc.Body.Paragraphs), nil
}
