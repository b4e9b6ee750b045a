package audio

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeWAVHeaderRoundTrip(t *testing.T) {
	cases := []struct {
		name        string
		pcm         []byte
		sampleRate  int
		channels    int
		sampleWidth int
	}{
		{"mono16k", []byte{1, 2, 3, 4}, 16000, 1, 2},
		{"stereo44k", bytes.Repeat([]byte{0x7f}, 64), 44100, 2, 2},
		{"mono8bit", []byte{9}, 8000, 1, 1},
		{"empty payload", nil, 16000, 1, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			container, err := EncodeWAV(tc.pcm, tc.sampleRate, tc.channels, tc.sampleWidth)
			if err != nil {
				t.Fatalf("EncodeWAV() error = %v", err)
			}
			if len(container) != 44+len(tc.pcm) {
				t.Fatalf("container size = %d, want %d", len(container), 44+len(tc.pcm))
			}

			h, err := ReadWAVHeader(container)
			if err != nil {
				t.Fatalf("ReadWAVHeader() error = %v", err)
			}
			if h.SampleRate != tc.sampleRate {
				t.Fatalf("SampleRate = %d, want %d", h.SampleRate, tc.sampleRate)
			}
			if h.Channels != tc.channels {
				t.Fatalf("Channels = %d, want %d", h.Channels, tc.channels)
			}
			if h.SampleWidth != tc.sampleWidth {
				t.Fatalf("SampleWidth = %d, want %d", h.SampleWidth, tc.sampleWidth)
			}
			if h.DataSize != len(tc.pcm) {
				t.Fatalf("DataSize = %d, want %d", h.DataSize, len(tc.pcm))
			}
			if !bytes.Equal(container[44:], tc.pcm) {
				t.Fatalf("payload was modified")
			}
		})
	}
}

func TestEncodeWAVRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name        string
		sampleRate  int
		channels    int
		sampleWidth int
	}{
		{"zero channels", 16000, 0, 2},
		{"negative channels", 16000, -1, 2},
		{"zero rate", 0, 1, 2},
		{"bad width", 16000, 1, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeWAV([]byte{1, 2}, tc.sampleRate, tc.channels, tc.sampleWidth)
			if !errors.Is(err, ErrInvalidAudioParams) {
				t.Fatalf("error = %v, want ErrInvalidAudioParams", err)
			}
		})
	}
}

func TestReadWAVHeaderRejectsGarbage(t *testing.T) {
	if _, err := ReadWAVHeader([]byte("short")); err == nil {
		t.Fatalf("expected error for truncated input")
	}
	junk := bytes.Repeat([]byte{0xAA}, 64)
	if _, err := ReadWAVHeader(junk); err == nil {
		t.Fatalf("expected error for non-RIFF input")
	}
}
