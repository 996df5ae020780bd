// Package chunker splits extracted text into bounded search units.
// Splitting is deterministic: the same text always produces the same
// chunk sequence, so reindexing is reproducible.
package chunker

import (
	"strings"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// DefaultBudget is the default maximum chunk length in runes.
const DefaultBudget = 800

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker packs sentences into chunks up to a rune budget.
// Text with no natural boundaries within budget is hard-split at the
// budget. Transcript chunks align to utterance boundaries and carry
// time offsets.
type Chunker struct {
	budget int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithBudget sets the maximum chunk length in runes.
func WithBudget(budget int) Option {
	return func(c *Chunker) {
		if budget > 0 {
			c.budget = budget
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{budget: DefaultBudget}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into ordered chunks owned by fileHash.
// Empty text yields an empty sequence.
func (c *Chunker) Chunk(fileHash, text string, transcript *domain.Transcript) []domain.Chunk {
	if transcript != nil && len(transcript.Utterances) > 0 {
		return c.chunkTranscript(fileHash, transcript)
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []domain.Chunk
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			ID:       domain.ChunkID(fileHash, len(chunks)),
			FileHash: fileHash,
			Index:    len(chunks),
			Text:     current.String(),
		})
		current.Reset()
		currentLen = 0
	}

	for _, sentence := range splitSentences(text) {
		runes := []rune(sentence)

		// Sentences beyond the budget are hard-split into
		// budget-sized pieces, each its own chunk.
		if len(runes) > c.budget {
			flush()
			for start := 0; start < len(runes); start += c.budget {
				end := start + c.budget
				if end > len(runes) {
					end = len(runes)
				}
				chunks = append(chunks, domain.Chunk{
					ID:       domain.ChunkID(fileHash, len(chunks)),
					FileHash: fileHash,
					Index:    len(chunks),
					Text:     string(runes[start:end]),
				})
			}
			continue
		}

		// +1 accounts for the joining space.
		if currentLen > 0 && currentLen+1+len(runes) > c.budget {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(sentence)
		currentLen += len(runes)
	}
	flush()

	return chunks
}

// chunkTranscript packs whole utterances into chunks so every chunk
// carries a meaningful start/end offset.
func (c *Chunker) chunkTranscript(fileHash string, transcript *domain.Transcript) []domain.Chunk {
	var chunks []domain.Chunk
	var current strings.Builder
	currentLen := 0
	var startSec, endSec float64

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			ID:       domain.ChunkID(fileHash, len(chunks)),
			FileHash: fileHash,
			Index:    len(chunks),
			Text:     current.String(),
			StartSec: startSec,
			EndSec:   endSec,
			Timed:    true,
		})
		current.Reset()
		currentLen = 0
	}

	for _, u := range transcript.Utterances {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		runes := len([]rune(text))

		if currentLen > 0 && currentLen+1+runes > c.budget {
			flush()
		}
		if currentLen == 0 {
			startSec = u.StartSec
		} else {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(text)
		currentLen += runes
		endSec = u.EndSec
	}
	flush()

	return chunks
}

// splitSentences breaks text on sentence terminators and blank lines.
// Terminators stay attached to their sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	emit := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?':
			// Only break when followed by whitespace or end of
			// text, so "3.14" stays intact.
			if i+1 == len(runes) || unicodeSpace(runes[i+1]) {
				emit()
			}
		case '\n':
			emit()
		}
	}
	emit()

	return sentences
}

func unicodeSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
