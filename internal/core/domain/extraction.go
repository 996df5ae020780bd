package domain

// ExtractionStatus reports how far extraction got for a file.
type ExtractionStatus string

const (
	// ExtractionSuccess means text and metadata were fully extracted.
	ExtractionSuccess ExtractionStatus = "success"

	// ExtractionPartial means metadata was extracted but text was not,
	// typically because transcription tooling is unavailable.
	ExtractionPartial ExtractionStatus = "partial"

	// ExtractionFailed means the format could not be parsed.
	// The file is still recorded and searchable by filename.
	ExtractionFailed ExtractionStatus = "failed"
)

// MediaInfo holds format-specific metadata discovered during extraction.
// Fields not applicable to a kind are left at their zero value.
type MediaInfo struct {
	// DurationSeconds is the playback length for audio and video.
	DurationSeconds float64

	// SampleRate is the audio sample rate in Hz.
	SampleRate int

	// Width and Height are the video resolution in pixels.
	Width  int
	Height int

	// PageCount is the page count for paginated documents.
	PageCount int

	// WordCount is the approximate word count of the extracted text.
	WordCount int
}

// ExtractionResult is the output of running an extractor over raw bytes.
// It is owned by a FileRecord and immutable after ingestion.
type ExtractionResult struct {
	// Text is the extracted plain text. Empty when extraction is
	// unsupported or failed; the file remains listed either way.
	Text string

	// Info contains format-specific metadata.
	Info MediaInfo

	// Status reports how far extraction got.
	Status ExtractionStatus

	// Diagnostic carries a human-readable reason for partial or
	// failed extraction. Empty on success.
	Diagnostic string

	// Transcript carries utterance timing for audio/video text,
	// used by the chunker to align chunk boundaries. Nil for documents.
	Transcript *Transcript
}

// Transcript is a timed sequence of spoken utterances.
type Transcript struct {
	Utterances []Utterance
}

// Utterance is a single timed span of transcribed speech.
type Utterance struct {
	// StartSec and EndSec are offsets from the start of the media.
	StartSec float64
	EndSec   float64

	// Text is the transcribed speech.
	Text string
}

// Text concatenates all utterances into one transcript string.
func (t *Transcript) Text() string {
	if t == nil || len(t.Utterances) == 0 {
		return ""
	}
	out := make([]byte, 0, 256)
	for i, u := range t.Utterances {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, u.Text...)
	}
	return string(out)
}
