package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
)

const documentXMLSample = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>Quarterly report</w:t></w:r>
      <w:r><w:t> for engineering</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>All systems nominal</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractor_Kind(t *testing.T) {
	e := New()
	assert.Equal(t, domain.KindDocument, e.Kind())
	assert.Equal(t, []string{".docx"}, e.SupportedExtensions())
	assert.Greater(t, e.Priority(), 5, "must outrank the plaintext fallback")
}

func TestExtract_Paragraphs(t *testing.T) {
	e := New()
	raw := &domain.RawMedia{
		Kind:     domain.KindDocument,
		Filename: "report.docx",
		Content:  buildDocx(t, documentXMLSample),
	}

	res, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, domain.ExtractionSuccess, res.Status)
	assert.Equal(t, "Quarterly report for engineering\nAll systems nominal", res.Text)
	assert.Equal(t, 2, res.Info.PageCount)
	assert.Equal(t, 7, res.Info.WordCount)
}

func TestExtract_NotAZipDegradesToFailed(t *testing.T) {
	e := New()
	raw := &domain.RawMedia{
		Kind:     domain.KindDocument,
		Filename: "broken.docx",
		Content:  []byte("plain text pretending to be docx"),
	}

	res, err := e.Extract(context.Background(), raw)
	require.NoError(t, err, "parse failures must not surface as errors")

	assert.Equal(t, domain.ExtractionFailed, res.Status)
	assert.Contains(t, res.Diagnostic, "docx container")
	assert.Empty(t, res.Text)
}

func TestExtract_MalformedXMLDegradesToFailed(t *testing.T) {
	e := New()
	raw := &domain.RawMedia{
		Kind:     domain.KindDocument,
		Filename: "broken.docx",
		Content:  buildDocx(t, "<w:document><unclosed"),
	}

	res, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, domain.ExtractionFailed, res.Status)
	assert.Contains(t, res.Diagnostic, "document.xml")
}

func TestExtract_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	require.NoError(t, w.Close())

	e := New()
	res, err := e.Extract(context.Background(), &domain.RawMedia{
		Kind:    domain.KindDocument,
		Content: buf.Bytes(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ExtractionSuccess, res.Status)
	assert.Empty(t, res.Text)
}

func TestExtract_NilInput(t *testing.T) {
	e := New()
	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
