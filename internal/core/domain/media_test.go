package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileKind_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  FileKind
	}{
		{"document", KindDocument},
		{"video", KindVideo},
		{"audio", KindAudio},
		{"  Document ", KindDocument},
		{"AUDIO", KindAudio},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseFileKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestParseFileKind_Unsupported(t *testing.T) {
	for _, input := range []string{"", "image", "docs", "mp4"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseFileKind(input)
			assert.ErrorIs(t, err, ErrUnsupportedKind)
		})
	}
}

func TestFileKind_Valid(t *testing.T) {
	assert.True(t, KindDocument.Valid())
	assert.True(t, KindVideo.Valid())
	assert.True(t, KindAudio.Valid())
	assert.False(t, FileKind("image").Valid())
	assert.False(t, FileKind("").Valid())
}

func TestKindForExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     FileKind
		ok       bool
	}{
		{"notes.txt", KindDocument, true},
		{"paper.PDF", KindDocument, true},
		{"clip.mp4", KindVideo, true},
		{"talk.wav", KindAudio, true},
		{"song.Mp3", KindAudio, true},
		{"photo.png", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			kind, ok := KindForExtension(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}
