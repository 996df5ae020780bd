// Package transcribe provides speech-to-text backends for the media
// extractors. The whisper backend shells out to a locally installed
// whisper CLI; the null backend reports itself unavailable so
// ingestion degrades to metadata-only extraction.
package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
	"github.com/mediadex/mediadex/internal/logger"
)

// Ensure Whisper implements the interface.
var _ driven.Transcriber = (*Whisper)(nil)

// transcribeTimeout bounds a single CLI invocation.
const transcribeTimeout = 15 * time.Minute

// Whisper transcribes media by invoking a whisper-compatible CLI.
type Whisper struct {
	bin string
}

// NewWhisper creates a whisper transcriber using the given binary
// name, falling back to "whisper" on PATH when empty.
func NewWhisper(bin string) *Whisper {
	if bin == "" {
		bin = "whisper"
	}
	return &Whisper{bin: bin}
}

// Available reports whether the whisper binary can be resolved.
func (w *Whisper) Available() bool {
	_, err := exec.LookPath(w.bin)
	return err == nil
}

// Transcribe writes the media to a temp file, runs the whisper CLI
// with JSON output and parses the segment list into a transcript.
func (w *Whisper) Transcribe(ctx context.Context, media []byte, format string) (*domain.Transcript, error) {
	if !w.Available() {
		return nil, domain.ErrTranscriberUnavailable
	}

	dir, err := os.MkdirTemp("", "mediadex-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if format == "" {
		format = "bin"
	}
	input := filepath.Join(dir, "input."+format)
	if err := os.WriteFile(input, media, 0o600); err != nil {
		return nil, fmt.Errorf("writing temp media: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, transcribeTimeout)
	defer cancel()

	logger.Debug("Running %s on %d byte %s input", w.bin, len(media), format)
	cmd := exec.CommandContext(ctx, w.bin, input, "--output_format", "json", "--output_dir", dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("running %s: %w: %s", w.bin, err, firstLine(out))
	}

	raw, err := os.ReadFile(filepath.Join(dir, "input.json"))
	if err != nil {
		return nil, fmt.Errorf("reading whisper output: %w", err)
	}
	return parseWhisperJSON(raw)
}

// whisperOutput mirrors the whisper CLI JSON output format.
type whisperOutput struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// parseWhisperJSON converts the CLI segment list into a transcript.
// Empty segments are dropped.
func parseWhisperJSON(raw []byte) (*domain.Transcript, error) {
	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parsing whisper output: %w", err)
	}

	transcript := &domain.Transcript{}
	for _, seg := range out.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		transcript.Utterances = append(transcript.Utterances, domain.Utterance{
			StartSec: seg.Start,
			EndSec:   seg.End,
			Text:     text,
		})
	}
	return transcript, nil
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
