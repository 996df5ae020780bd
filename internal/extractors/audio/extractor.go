// Package audio extracts metadata and transcripts from audio files.
//
// WAV headers are parsed directly for sample rate and duration; MP3
// duration is estimated from the first frame header. Speech content
// comes from an injected transcriber, mirroring the video extractor.
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles audio files.
type Extractor struct {
	transcriber driven.Transcriber
}

// New creates a new audio extractor with the given transcriber.
func New(transcriber driven.Transcriber) *Extractor {
	return &Extractor{transcriber: transcriber}
}

// Kind returns the media kind this extractor handles.
func (e *Extractor) Kind() domain.FileKind {
	return domain.KindAudio
}

// SupportedExtensions returns nil: this is the audio fallback.
func (e *Extractor) SupportedExtensions() []string {
	return nil
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5
}

// Extract reads format metadata and, when a transcriber is available,
// the speech transcript. A missing or failing transcriber yields a
// partial result with the metadata intact.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	ext := strings.ToLower(filepath.Ext(raw.Filename))
	info := probeAudio(raw.Content, ext)

	if e.transcriber == nil || !e.transcriber.Available() {
		return &domain.ExtractionResult{
			Info:       info,
			Status:     domain.ExtractionPartial,
			Diagnostic: "transcriber unavailable, metadata only",
		}, nil
	}

	transcript, err := e.transcriber.Transcribe(ctx, raw.Content, strings.TrimPrefix(ext, "."))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return &domain.ExtractionResult{
			Info:       info,
			Status:     domain.ExtractionPartial,
			Diagnostic: fmt.Sprintf("transcription: %v", err),
		}, nil
	}

	return &domain.ExtractionResult{
		Text:       transcript.Text(),
		Info:       info,
		Status:     domain.ExtractionSuccess,
		Transcript: transcript,
	}, nil
}

// probeAudio dispatches on extension, falling back to WAV magic byte
// sniffing. Unparseable input yields zero values.
func probeAudio(content []byte, ext string) domain.MediaInfo {
	switch ext {
	case ".wav":
		return probeWAV(content)
	case ".mp3":
		return probeMP3(content)
	}
	if len(content) >= 4 && string(content[:4]) == "RIFF" {
		return probeWAV(content)
	}
	return domain.MediaInfo{}
}

// probeWAV walks the RIFF chunks for fmt (sample rate, byte rate) and
// data (payload size). Duration is the data size over the byte rate.
func probeWAV(content []byte) domain.MediaInfo {
	var info domain.MediaInfo
	if len(content) < 12 || string(content[:4]) != "RIFF" || string(content[8:12]) != "WAVE" {
		return info
	}

	var byteRate uint32
	var dataSize uint32

	buf := content[12:]
	for len(buf) >= 8 {
		chunkID := string(buf[:4])
		chunkSize := binary.LittleEndian.Uint32(buf[4:8])
		body := buf[8:]
		if int(chunkSize) > len(body) {
			chunkSize = uint32(len(body))
		}

		switch chunkID {
		case "fmt ":
			if chunkSize >= 16 {
				info.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
				byteRate = binary.LittleEndian.Uint32(body[8:12])
			}
		case "data":
			dataSize = chunkSize
		}

		// Chunks are word aligned.
		advance := int(chunkSize)
		if advance%2 == 1 {
			advance++
		}
		if 8+advance > len(buf) {
			break
		}
		buf = buf[8+advance:]
	}

	if byteRate > 0 && dataSize > 0 {
		info.DurationSeconds = float64(dataSize) / float64(byteRate)
	}
	return info
}

// mpeg1Layer3Bitrates maps the MPEG-1 Layer III bitrate index to kbps.
var mpeg1Layer3Bitrates = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}

// mpeg1SampleRates maps the MPEG-1 sample rate index to Hz.
var mpeg1SampleRates = [4]int{44100, 48000, 32000, 0}

// probeMP3 locates the first MPEG-1 Layer III frame header and
// estimates duration from the file size and frame bitrate. ID3v2 tags
// are skipped. Variable bitrate files get a rough estimate only.
func probeMP3(content []byte) domain.MediaInfo {
	var info domain.MediaInfo

	offset := 0
	if len(content) >= 10 && string(content[:3]) == "ID3" {
		// Syncsafe 28-bit tag size.
		size := int(content[6])<<21 | int(content[7])<<14 | int(content[8])<<7 | int(content[9])
		offset = 10 + size
	}

	for i := offset; i+4 <= len(content); i++ {
		if content[i] != 0xFF || content[i+1]&0xE0 != 0xE0 {
			continue
		}
		versionBits := (content[i+1] >> 3) & 0x03
		layerBits := (content[i+1] >> 1) & 0x03
		if versionBits != 0x03 || layerBits != 0x01 {
			continue
		}

		bitrateIdx := content[i+2] >> 4
		sampleIdx := (content[i+2] >> 2) & 0x03
		bitrate := mpeg1Layer3Bitrates[bitrateIdx]
		sampleRate := mpeg1SampleRates[sampleIdx]
		if bitrate == 0 || sampleRate == 0 {
			continue
		}

		info.SampleRate = sampleRate
		audioBytes := len(content) - i
		info.DurationSeconds = float64(audioBytes*8) / float64(bitrate*1000)
		return info
	}
	return info
}
