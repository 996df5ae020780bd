package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

func record(hash, name string) *domain.FileRecord {
	return &domain.FileRecord{Hash: hash, Name: name, Kind: domain.KindDocument}
}

func chunk(hash string, idx int, text string) domain.Chunk {
	return domain.Chunk{
		ID:       domain.ChunkID(hash, idx),
		FileHash: hash,
		Index:    idx,
		Text:     text,
	}
}

func TestIndex_UpdateAndLookup(t *testing.T) {
	ix := New()
	ctx := context.Background()

	err := ix.Update(ctx, record("h1", "fox.txt"), []domain.Chunk{
		chunk("h1", 0, "the quick brown fox"),
		chunk("h1", 1, "jumps over the lazy dog"),
	})
	require.NoError(t, err)

	postings, err := ix.Lookup(ctx, "fox")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "h1", postings[0].FileHash)
	assert.Equal(t, 0, postings[0].ChunkIndex)
	assert.Equal(t, 1, postings[0].Frequency)

	postings, err = ix.Lookup(ctx, "the")
	require.NoError(t, err)
	assert.Len(t, postings, 2)

	postings, err = ix.Lookup(ctx, "elephant")
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestIndex_Update_ReplacesPreviousEntries(t *testing.T) {
	ix := New()
	ctx := context.Background()

	rec := record("h1", "doc.txt")
	require.NoError(t, ix.Update(ctx, rec, []domain.Chunk{chunk("h1", 0, "alpha beta")}))
	require.NoError(t, ix.Update(ctx, rec, []domain.Chunk{chunk("h1", 0, "gamma delta")}))

	postings, err := ix.Lookup(ctx, "alpha")
	require.NoError(t, err)
	assert.Empty(t, postings, "stale terms must be purged on update")

	postings, err = ix.Lookup(ctx, "gamma")
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}

func TestIndex_Remove(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Update(ctx, record("h1", "solo.txt"),
		[]domain.Chunk{chunk("h1", 0, "unique zanzibar term")}))
	require.NoError(t, ix.Update(ctx, record("h2", "other.txt"),
		[]domain.Chunk{chunk("h2", 0, "shared term")}))

	require.NoError(t, ix.Remove(ctx, "h1"))

	postings, err := ix.Lookup(ctx, "zanzibar")
	require.NoError(t, err)
	assert.Empty(t, postings)

	// Unrelated file untouched.
	postings, err = ix.Lookup(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, postings, 1)

	// Filename terms purged too.
	hashes, err := ix.LookupName(ctx, "solo")
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

func TestIndex_LookupName(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Update(ctx, record("h1", "quarterly_report.pdf"), nil))

	hashes, err := ix.LookupName(ctx, "quarterly")
	require.NoError(t, err)
	assert.Equal(t, []string{"h1"}, hashes)

	hashes, err = ix.LookupName(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

func TestIndex_Rebuild_Atomic(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Update(ctx, record("old", "old.txt"),
		[]domain.Chunk{chunk("old", 0, "stale content")}))

	files := []driven.IndexedFile{
		{
			Record: *record("h1", "a.txt"),
			Chunks: []domain.Chunk{chunk("h1", 0, "fresh content")},
		},
		{
			Record: *record("h2", "b.txt"),
			Chunks: []domain.Chunk{chunk("h2", 0, "more content")},
		},
	}
	require.NoError(t, ix.Rebuild(ctx, files))

	// Pre-rebuild entries are gone.
	postings, err := ix.Lookup(ctx, "stale")
	require.NoError(t, err)
	assert.Empty(t, postings)

	postings, err = ix.Lookup(ctx, "content")
	require.NoError(t, err)
	assert.Len(t, postings, 2)
}

func TestIndex_Rebuild_Deterministic(t *testing.T) {
	ctx := context.Background()
	files := []driven.IndexedFile{
		{
			Record: *record("h2", "b.txt"),
			Chunks: []domain.Chunk{chunk("h2", 0, "alpha beta alpha")},
		},
		{
			Record: *record("h1", "a.txt"),
			Chunks: []domain.Chunk{chunk("h1", 0, "alpha gamma")},
		},
	}

	ix1 := New()
	require.NoError(t, ix1.Rebuild(ctx, files))
	ix2 := New()
	require.NoError(t, ix2.Rebuild(ctx, files))

	p1, err := ix1.Lookup(ctx, "alpha")
	require.NoError(t, err)
	p2, err := ix2.Lookup(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}
