package domain

import "time"

// FileRecord is the durable record of an ingested file.
// The content hash uniquely identifies the file; re-uploading identical
// bytes updates LastSeenAt only.
type FileRecord struct {
	// Hash is the SHA-256 hex digest of the raw bytes. Primary key.
	Hash string

	// Name is the original upload filename.
	Name string

	// Kind is the media category.
	Kind FileKind

	// Size is the raw byte length.
	Size int64

	// StoragePath is where the raw bytes live on disk,
	// derived from hash and kind.
	StoragePath string

	// UploadedAt is when the content was first ingested.
	UploadedAt time.Time

	// LastSeenAt is when the content was most recently re-uploaded.
	LastSeenAt time.Time

	// Extraction is the immutable extraction output for this file.
	Extraction ExtractionResult
}

// Summary reduces a record to its transport-facing summary form.
func (r *FileRecord) Summary(chunkCount int) FileSummary {
	return FileSummary{
		Hash:       r.Hash,
		Name:       r.Name,
		Kind:       r.Kind,
		Size:       r.Size,
		Status:     r.Extraction.Status,
		ChunkCount: chunkCount,
		UploadedAt: r.UploadedAt,
	}
}

// FileSummary is the compact view returned by ingest and list operations.
type FileSummary struct {
	Hash       string           `json:"hash"`
	Name       string           `json:"name"`
	Kind       FileKind         `json:"kind"`
	Size       int64            `json:"size"`
	Status     ExtractionStatus `json:"status"`
	ChunkCount int              `json:"chunk_count"`
	UploadedAt time.Time        `json:"uploaded_at"`
}

// FileDetail is the full view returned by get operations.
type FileDetail struct {
	FileSummary

	StoragePath string    `json:"storage_path"`
	LastSeenAt  time.Time `json:"last_seen_at"`
	Info        MediaInfo `json:"info"`
	Diagnostic  string    `json:"diagnostic,omitempty"`

	// TextPreview is the head of the extracted text, for display.
	TextPreview string `json:"text_preview,omitempty"`
}
