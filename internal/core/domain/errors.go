package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a lookup or delete on an unknown hash.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedKind indicates a declared kind outside the closed
	// set. Ingestion is rejected before extraction.
	ErrUnsupportedKind = errors.New("unsupported media kind")

	// ErrOversizeInput indicates input above the configured size
	// ceiling, rejected before any processing.
	ErrOversizeInput = errors.New("input exceeds size ceiling")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTranscriberUnavailable indicates no speech-to-text tooling is
	// configured. Audio/video extraction degrades to metadata only.
	ErrTranscriberUnavailable = errors.New("transcriber unavailable")
)
