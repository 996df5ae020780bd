package domain

import (
	"path/filepath"
	"strings"
)

// FileKind identifies the media category of an ingested file.
// It is a closed set; extraction strategies dispatch on it.
type FileKind string

const (
	// KindDocument covers textual formats (plain text, PDF, DOCX).
	KindDocument FileKind = "document"

	// KindVideo covers video containers (MP4, MOV, MKV).
	KindVideo FileKind = "video"

	// KindAudio covers audio formats (WAV, MP3, M4A, FLAC).
	KindAudio FileKind = "audio"
)

// ParseFileKind validates a declared kind string.
// Returns ErrUnsupportedKind for anything outside the closed set.
func ParseFileKind(s string) (FileKind, error) {
	switch FileKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindDocument:
		return KindDocument, nil
	case KindVideo:
		return KindVideo, nil
	case KindAudio:
		return KindAudio, nil
	default:
		return "", ErrUnsupportedKind
	}
}

// Valid reports whether the kind is a member of the closed set.
func (k FileKind) Valid() bool {
	switch k {
	case KindDocument, KindVideo, KindAudio:
		return true
	}
	return false
}

// KindForExtension infers a file kind from a filename extension.
// Used by transports that receive files without a declared kind
// (directory watcher, drag-and-drop upload).
func KindForExtension(filename string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".pdf", ".docx", ".doc", ".csv", ".json", ".xml", ".html":
		return KindDocument, true
	case ".mp4", ".mov", ".avi", ".mkv", ".webm":
		return KindVideo, true
	case ".wav", ".mp3", ".m4a", ".aac", ".flac", ".ogg":
		return KindAudio, true
	}
	return "", false
}

// RawMedia represents opaque uploaded bytes before extraction.
type RawMedia struct {
	// Kind is the declared media category.
	Kind FileKind

	// Filename is the original upload name.
	Filename string

	// Content is the raw bytes.
	Content []byte
}
