package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
)

func mustIngest(t *testing.T, f *fixture, kind domain.FileKind, name, text string) string {
	t.Helper()
	summary, err := f.ingest.Ingest(context.Background(), kind, name, []byte(text))
	require.NoError(t, err)
	return summary.Hash
}

func TestSearch_CoverageBeatsFrequency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	both := mustIngest(t, f, domain.KindDocument, "both.txt", "alpha beta once each here")
	repeat := mustIngest(t, f, domain.KindDocument, "repeat.txt",
		"alpha "+strings.Repeat("alpha ", 50)+"but never the other term")

	results, err := f.search.Search(ctx, "alpha beta", domain.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, both, results[0].File.Hash, "two distinct terms outrank fifty repeats of one")
	assert.Equal(t, repeat, results[1].File.Hash)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearch_FrequencyNeverOutranksRecencyAtEqualCoverage(t *testing.T) {
	ctx := context.Background()

	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	clock := t0
	f := newFixture(t, WithClock(func() time.Time { return clock }))

	repeat := mustIngest(t, f, domain.KindDocument, "first.txt", "alpha alpha alpha beta")
	clock = t0.Add(time.Minute)
	compact := mustIngest(t, f, domain.KindDocument, "second.txt", "alpha beta")

	results, err := f.search.Search(ctx, "alpha beta", domain.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, results[0].Score, results[1].Score, "equal coverage ties on score")
	assert.Equal(t, compact, results[0].File.Hash, "ties break toward the newer file, not the higher term count")
	assert.Equal(t, repeat, results[1].File.Hash)
}

func TestSearch_SnippetAroundMatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	text := strings.Repeat("padding words before the match ", 20) +
		"the quick brown fox jumps over the lazy dog " +
		strings.Repeat("and padding words after the match ", 20)
	mustIngest(t, f, domain.KindDocument, "fox.txt", text)

	results, err := f.search.Search(ctx, "elephant", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, results, "absent terms match nothing")

	results, err = f.search.Search(ctx, "fox", domain.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Contains(t, results[0].Snippet, "fox")
	assert.True(t, strings.HasPrefix(results[0].Snippet, "..."), "snippet is windowed, not the whole chunk")
	require.NotNil(t, results[0].Chunk)
}

func TestSnippet_CaseFoldingKeepsOffsetsAligned(t *testing.T) {
	// U+0130 lowers to two runes under full case folding; the window
	// must still land on the match in the original text.
	text := strings.Repeat("İ", 150) + " fox " + strings.Repeat("y", 150)

	out := snippet(text, []string{"fox"})
	assert.Contains(t, out, "fox")
}

func TestSearch_KindFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc := mustIngest(t, f, domain.KindDocument, "notes.txt", "standup meeting notes")
	mustIngest(t, f, domain.KindVideo, "meeting.mp4", "ignored video bytes")

	all, err := f.search.Search(ctx, "meeting", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	docsOnly, err := f.search.Search(ctx, "meeting", domain.QueryOptions{Kind: domain.KindDocument})
	require.NoError(t, err)
	require.Len(t, docsOnly, 1)
	assert.Equal(t, doc, docsOnly[0].File.Hash)
}

func TestSearch_FilenameOnlyRanksBelowContent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	content := mustIngest(t, f, domain.KindDocument, "other.txt", "the report covers revenue")
	named := mustIngest(t, f, domain.KindDocument, "report.txt", "nothing relevant inside")

	results, err := f.search.Search(ctx, "report", domain.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, content, results[0].File.Hash, "content match outranks filename match")
	assert.Equal(t, named, results[1].File.Hash)
	assert.Nil(t, results[1].Chunk)
}

func TestSearch_EmptyQueryAndLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		mustIngest(t, f, domain.KindDocument, "doc"+string(rune('a'+i))+".txt",
			"shared keyword plus unique filler "+strings.Repeat(string(rune('a'+i)), 3))
	}

	results, err := f.search.Search(ctx, "   ", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = f.search.Search(ctx, "shared", domain.QueryOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_DeletedFileDisappears(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	hash := mustIngest(t, f, domain.KindDocument, "gone.txt", "ephemeral content here")

	results, err := f.search.Search(ctx, "ephemeral", domain.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NoError(t, f.library.Delete(ctx, hash))

	results, err = f.search.Search(ctx, "ephemeral", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, results, "no stale hits after delete")

	results, err = f.search.Search(ctx, "gone", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, results, "filename entries are purged too")
}
