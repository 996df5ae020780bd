package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// fakeExtractor records whether it ran and answers with a marker text.
type fakeExtractor struct {
	kind     domain.FileKind
	exts     []string
	priority int
	marker   string
}

func (f *fakeExtractor) Kind() domain.FileKind         { return f.kind }
func (f *fakeExtractor) SupportedExtensions() []string { return f.exts }
func (f *fakeExtractor) Priority() int                 { return f.priority }

func (f *fakeExtractor) Extract(context.Context, *domain.RawMedia) (*domain.ExtractionResult, error) {
	return &domain.ExtractionResult{Text: f.marker, Status: domain.ExtractionSuccess}, nil
}

func TestRegistry_ExtensionBeatsFallback(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeExtractor{kind: domain.KindDocument, priority: 5, marker: "fallback"})
	r.Register(&fakeExtractor{kind: domain.KindDocument, exts: []string{".pdf"}, priority: 50, marker: "pdf"})

	res, err := r.Extract(context.Background(), &domain.RawMedia{
		Kind:     domain.KindDocument,
		Filename: "paper.PDF",
	})
	require.NoError(t, err)
	assert.Equal(t, "pdf", res.Text, "extension match is case insensitive and outranks the fallback")

	res, err = r.Extract(context.Background(), &domain.RawMedia{
		Kind:     domain.KindDocument,
		Filename: "notes.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, "fallback", res.Text)
}

func TestRegistry_KindIsolation(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeExtractor{kind: domain.KindDocument, priority: 5, marker: "doc"})

	res, err := r.Extract(context.Background(), &domain.RawMedia{
		Kind:     domain.KindVideo,
		Filename: "clip.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionFailed, res.Status)
	assert.NotEmpty(t, res.Diagnostic)
}

func TestRegistry_NoExtractorsDegradesToFailed(t *testing.T) {
	r := NewRegistry()
	res, err := r.Extract(context.Background(), &domain.RawMedia{
		Kind:     domain.KindAudio,
		Filename: "memo.wav",
	})
	require.NoError(t, err, "missing extractor must not surface as an error")
	assert.Equal(t, domain.ExtractionFailed, res.Status)
}

func TestRegistry_NilInput(t *testing.T) {
	r := NewRegistry()
	_, err := r.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
