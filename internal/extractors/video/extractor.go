// Package video extracts metadata and transcripts from video files.
//
// Container metadata (duration, resolution) is read directly from the
// MP4 box structure. Speech content comes from an injected transcriber;
// when none is available the extraction degrades to a partial result
// that still carries the container metadata.
package video

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

// Extractor handles video files.
type Extractor struct {
	transcriber driven.Transcriber
}

// New creates a new video extractor with the given transcriber.
func New(transcriber driven.Transcriber) *Extractor {
	return &Extractor{transcriber: transcriber}
}

// Kind returns the media kind this extractor handles.
func (e *Extractor) Kind() domain.FileKind {
	return domain.KindVideo
}

// SupportedExtensions returns nil: this is the video fallback.
func (e *Extractor) SupportedExtensions() []string {
	return nil
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5
}

// Extract reads container metadata and, when a transcriber is
// available, the speech transcript. A missing or failing transcriber
// yields a partial result; the metadata survives either way.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawMedia) (*domain.ExtractionResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	info := probeMP4(raw.Content)

	if e.transcriber == nil || !e.transcriber.Available() {
		return &domain.ExtractionResult{
			Info:       info,
			Status:     domain.ExtractionPartial,
			Diagnostic: "transcriber unavailable, metadata only",
		}, nil
	}

	format := strings.TrimPrefix(filepath.Ext(raw.Filename), ".")
	transcript, err := e.transcriber.Transcribe(ctx, raw.Content, format)
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

// probeMP4 walks the top-level MP4 box structure looking for the movie
// header (duration) and track headers (resolution). Unparseable input
// simply yields zero values.
func probeMP4(content []byte) domain.MediaInfo {
	var info domain.MediaInfo
	walkBoxes(content, func(boxType string, payload []byte) {
		switch boxType {
		case "moov":
			walkBoxes(payload, func(inner string, innerPayload []byte) {
				switch inner {
				case "mvhd":
					if d, ok := parseMovieHeader(innerPayload); ok {
						info.DurationSeconds = d
					}
				case "trak":
					walkBoxes(innerPayload, func(trackBox string, trackPayload []byte) {
						if trackBox != "tkhd" {
							return
						}
						if w, h, ok := parseTrackHeader(trackPayload); ok && w > 0 && h > 0 {
							info.Width = w
							info.Height = h
						}
					})
				}
			})
		}
	})
	return info
}

// walkBoxes iterates over the boxes in buf, invoking fn with each box
// type and payload. Malformed sizes terminate the walk.
func walkBoxes(buf []byte, fn func(boxType string, payload []byte)) {
	for len(buf) >= 8 {
		size := binary.BigEndian.Uint32(buf[:4])
		boxType := string(buf[4:8])
		if size < 8 || int(size) > len(buf) {
			return
		}
		fn(boxType, buf[8:size])
		buf = buf[size:]
	}
}

// parseMovieHeader reads the timescale and duration from an mvhd
// payload and returns the duration in seconds.
func parseMovieHeader(payload []byte) (float64, bool) {
	if len(payload) < 4 {
		return 0, false
	}
	version := payload[0]

	if version == 1 {
		// 64-bit creation and modification times.
		if len(payload) < 32 {
			return 0, false
		}
		timescale := binary.BigEndian.Uint32(payload[20:24])
		duration := binary.BigEndian.Uint64(payload[24:32])
		if timescale == 0 {
			return 0, false
		}
		return float64(duration) / float64(timescale), true
	}

	if len(payload) < 20 {
		return 0, false
	}
	timescale := binary.BigEndian.Uint32(payload[12:16])
	duration := binary.BigEndian.Uint32(payload[16:20])
	if timescale == 0 {
		return 0, false
	}
	return float64(duration) / float64(timescale), true
}

// parseTrackHeader reads the presentation width and height from a tkhd
// payload. Both are 16.16 fixed-point values at the end of the box.
func parseTrackHeader(payload []byte) (width, height int, ok bool) {
	if len(payload) < 4 {
		return 0, 0, false
	}
	version := payload[0]

	// Width and height sit after the version-dependent times and the
	// fixed-size middle fields.
	offset := 76
	if version == 1 {
		offset = 88
	}
	if len(payload) < offset+8 {
		return 0, 0, false
	}

	width = int(binary.BigEndian.Uint32(payload[offset:offset+4]) >> 16)
	height = int(binary.BigEndian.Uint32(payload[offset+4:offset+8]) >> 16)
	return width, height, true
}
