package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
)

func record(hash, name string, kind domain.FileKind, uploaded time.Time) *domain.FileRecord {
	return &domain.FileRecord{
		Hash:       hash,
		Name:       name,
		Kind:       kind,
		UploadedAt: uploaded,
		LastSeenAt: uploaded,
		Extraction: domain.ExtractionResult{Status: domain.ExtractionSuccess},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore()

	now := time.Now()
	chunks := []domain.Chunk{
		{ID: "h1:1", FileHash: "h1", Index: 1, Text: "second"},
		{ID: "h1:0", FileHash: "h1", Index: 0, Text: "first"},
	}
	require.NoError(t, s.Put(ctx, record("h1", "a.txt", domain.KindDocument, now), chunks))

	got, err := s.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Name)

	gotChunks, err := s.GetChunks(ctx, "h1")
	require.NoError(t, err)
	require.Len(t, gotChunks, 2)
	assert.Equal(t, "first", gotChunks[0].Text, "chunks come back in index order")
}

func TestGet_Unknown(t *testing.T) {
	s := NewFileStore()
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_KindFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore()

	base := time.Now()
	require.NoError(t, s.Put(ctx, record("h1", "old.txt", domain.KindDocument, base.Add(-time.Hour)), nil))
	require.NoError(t, s.Put(ctx, record("h2", "new.txt", domain.KindDocument, base), nil))
	require.NoError(t, s.Put(ctx, record("h3", "clip.mp4", domain.KindVideo, base), nil))

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	docs, err := s.List(ctx, domain.KindDocument)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new.txt", docs[0].Name, "newest first")
}

func TestTouchLastSeen(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore()

	uploaded := time.Now().Add(-time.Hour)
	require.NoError(t, s.Put(ctx, record("h1", "a.txt", domain.KindDocument, uploaded), nil))

	seen := time.Now()
	require.NoError(t, s.TouchLastSeen(ctx, "h1", seen))

	got, err := s.Get(ctx, "h1")
	require.NoError(t, err)
	assert.True(t, got.LastSeenAt.Equal(seen))
	assert.True(t, got.UploadedAt.Equal(uploaded), "upload time is immutable")

	assert.ErrorIs(t, s.TouchLastSeen(ctx, "missing", seen), domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore()

	require.NoError(t, s.Put(ctx, record("h1", "a.txt", domain.KindDocument, time.Now()), []domain.Chunk{{ID: "h1:0", FileHash: "h1"}}))
	require.NoError(t, s.Delete(ctx, "h1"))

	_, err := s.Get(ctx, "h1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := s.GetChunks(ctx, "h1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	assert.ErrorIs(t, s.Delete(ctx, "h1"), domain.ErrNotFound)
}
