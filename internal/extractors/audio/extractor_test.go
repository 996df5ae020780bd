package audio

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/core/domain"
)

type stubTranscriber struct {
	available  bool
	transcript *domain.Transcript
	err        error
}

func (s *stubTranscriber) Available() bool { return s.available }

func (s *stubTranscriber) Transcribe(context.Context, []byte, string) (*domain.Transcript, error) {
	return s.transcript, s.err
}

// buildWAV constructs a minimal PCM WAV file with the given sample
// rate and data payload size.
func buildWAV(sampleRate, dataSize int) []byte {
	const channels = 1
	const bitsPerSample = 16
	byteRate := sampleRate * channels * bitsPerSample / 8

	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataSize))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, channels)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels*bitsPerSample/8))
	buf = binary.LittleEndian.AppendUint16(buf, bitsPerSample)

	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	buf = append(buf, make([]byte, dataSize)...)
	return buf
}

func TestExtractor_Kind(t *testing.T) {
	e := New(nil)
	assert.Equal(t, domain.KindAudio, e.Kind())
	assert.Nil(t, e.SupportedExtensions())
}

func TestExtract_WAVMetadata(t *testing.T) {
	// 16kHz mono 16-bit, 2 seconds of audio.
	content := buildWAV(16000, 64000)
	e := New(nil)

	res, err := e.Extract(context.Background(), &domain.RawMedia{
		Kind:     domain.KindAudio,
		Filename: "memo.wav",
		Content:  content,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ExtractionPartial, res.Status)
	assert.Equal(t, 16000, res.Info.SampleRate)
	assert.InDelta(t, 2.0, res.Info.DurationSeconds, 0.001)
}

func TestExtract_WithTranscript(t *testing.T) {
	transcript := &domain.Transcript{Utterances: []domain.Utterance{
		{StartSec: 0, EndSec: 2, Text: "meeting notes follow"},
	}}
	e := New(&stubTranscriber{available: true, transcript: transcript})

	res, err := e.Extract(context.Background(), &domain.RawMedia{
		Kind:     domain.KindAudio,
		Filename: "memo.wav",
		Content:  buildWAV(16000, 64000),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ExtractionSuccess, res.Status)
	assert.Equal(t, "meeting notes follow", res.Text)
	assert.Equal(t, 16000, res.Info.SampleRate)
}

func TestExtract_GarbageContent(t *testing.T) {
	e := New(nil)
	res, err := e.Extract(context.Background(), &domain.RawMedia{
		Kind:     domain.KindAudio,
		Filename: "noise.wav",
		Content:  []byte("not audio at all"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ExtractionPartial, res.Status)
	assert.Zero(t, res.Info.SampleRate)
}

func TestExtract_NilInput(t *testing.T) {
	e := New(nil)
	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProbeMP3_FirstFrameEstimate(t *testing.T) {
	// MPEG-1 Layer III, 128 kbps, 44100 Hz frame header followed by
	// sixteen kilobytes of payload: one second at that bitrate.
	content := make([]byte, 16000)
	content[0] = 0xFF
	content[1] = 0xFB
	content[2] = 0x90

	info := probeMP3(content)
	assert.Equal(t, 44100, info.SampleRate)
	assert.InDelta(t, 1.0, info.DurationSeconds, 0.01)
}

func TestProbeMP3_ID3TagSkipped(t *testing.T) {
	tag := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 100}
	content := append(tag, make([]byte, 100)...)
	frame := make([]byte, 16000)
	frame[0] = 0xFF
	frame[1] = 0xFB
	frame[2] = 0x90
	content = append(content, frame...)

	info := probeMP3(content)
	assert.Equal(t, 44100, info.SampleRate)
}
