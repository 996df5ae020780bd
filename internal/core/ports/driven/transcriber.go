package driven

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// Transcriber is the optional speech-to-text capability injected into
// audio and video extractors. Implementations wrap external tooling that
// may or may not be present at runtime; callers must check Available
// and degrade to metadata-only extraction when it reports false.
type Transcriber interface {
	// Available reports whether transcription tooling is usable.
	Available() bool

	// Transcribe converts speech in the given media bytes to timed
	// utterances. Format is the filename extension without the dot
	// (e.g. "wav", "mp4"); container demuxing is the tool's concern.
	Transcribe(ctx context.Context, media []byte, format string) (*domain.Transcript, error)
}
