package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "mediadex version")
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "0:05", formatOffset(5.4))
	assert.Equal(t, "1:30", formatOffset(90))
	assert.Equal(t, "12:03", formatOffset(723))
}

func TestFormatResults(t *testing.T) {
	assert.Equal(t, "No results found.\n", formatResults(nil))

	results := []domain.QueryResult{
		{
			File:    domain.FileSummary{Name: "talk.mp4", Kind: domain.KindVideo},
			Chunk:   &domain.Chunk{Text: "welcome everyone", StartSec: 30, EndSec: 45, Timed: true},
			Score:   2.5,
			Snippet: "welcome everyone",
		},
		{
			File:    domain.FileSummary{Name: "report.txt", Kind: domain.KindDocument},
			Score:   0.1,
			Snippet: "report.txt",
		},
	}

	out := formatResults(results)
	assert.Contains(t, out, "talk.mp4")
	assert.Contains(t, out, "0:30 - 0:45")
	assert.Contains(t, out, "report.txt")
	assert.Equal(t, 2, strings.Count(out, "score="))
}

func TestResolveKind(t *testing.T) {
	ingestKind = ""
	kind, err := resolveKind("memo.wav")
	require.NoError(t, err)
	assert.Equal(t, domain.KindAudio, kind)

	_, err = resolveKind("opaque.bin")
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)

	ingestKind = "video"
	defer func() { ingestKind = "" }()
	kind, err = resolveKind("opaque.bin")
	require.NoError(t, err)
	assert.Equal(t, domain.KindVideo, kind)
}
