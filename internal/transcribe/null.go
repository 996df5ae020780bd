package transcribe

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// Ensure Null implements the interface.
var _ driven.Transcriber = (*Null)(nil)

// Null is a transcriber that is never available. Extractors wired with
// it produce metadata-only partial results.
type Null struct{}

// NewNull creates a null transcriber.
func NewNull() *Null {
	return &Null{}
}

// Available always reports false.
func (n *Null) Available() bool {
	return false
}

// Transcribe always fails with ErrTranscriberUnavailable.
func (n *Null) Transcribe(context.Context, []byte, string) (*domain.Transcript, error) {
	return nil, domain.ErrTranscriberUnavailable
}
