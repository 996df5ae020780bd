package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
)

func TestExtractor_Kind(t *testing.T) {
	e := New()
	assert.Equal(t, domain.KindDocument, e.Kind())
	assert.Nil(t, e.SupportedExtensions())
}

func TestExtract_Verbatim(t *testing.T) {
	e := New()
	raw := &domain.RawMedia{
		Kind:     domain.KindDocument,
		Filename: "notes.txt",
		Content:  []byte("the quick brown fox"),
	}

	res, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, domain.ExtractionSuccess, res.Status)
	assert.Equal(t, "the quick brown fox", res.Text)
	assert.Equal(t, 4, res.Info.WordCount)
	assert.Nil(t, res.Transcript)
}

func TestExtract_InvalidUTF8Dropped(t *testing.T) {
	e := New()
	raw := &domain.RawMedia{
		Kind:    domain.KindDocument,
		Content: []byte{'o', 'k', 0xff, 0xfe},
	}

	res, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text)
}

func TestExtract_NilInput(t *testing.T) {
	e := New()
	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
