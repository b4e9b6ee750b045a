package audio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidAudioParams is returned when PCM parameters cannot describe a
// well-formed container (zero channels, zero rate, unsupported width).
var ErrInvalidAudioParams = errors.New("invalid audio parameters")

// Header describes the PCM format fields of a WAV container.
type Header struct {
	SampleRate  int
	Channels    int
	SampleWidth int // bytes per sample
	DataSize    int
}

// EncodeWAV wraps raw interleaved PCM bytes in a WAV container. Empty input is
// valid and yields a header-only container. No compression, no resampling.
func EncodeWAV(pcm []byte, sampleRate, channels, sampleWidth int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWAVTo(&buf, pcm, sampleRate, channels, sampleWidth); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeWAVPCM16Mono wraps raw PCM16LE mono audio, the fixed format the game
// client records and plays back.
func EncodeWAVPCM16Mono(pcm []byte, sampleRate int) ([]byte, error) {
	return EncodeWAV(pcm, sampleRate, 1, 2)
}

// WriteWAVTo streams a WAV container for the given PCM bytes to out.
func WriteWAVTo(out io.Writer, pcm []byte, sampleRate, channels, sampleWidth int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidAudioParams, sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("%w: channel count %d", ErrInvalidAudioParams, channels)
	}
	if sampleWidth != 1 && sampleWidth != 2 && sampleWidth != 3 && sampleWidth != 4 {
		return fmt.Errorf("%w: sample width %d bytes", ErrInvalidAudioParams, sampleWidth)
	}

	const audioFormat = 1 // PCM

	dataSize := uint32(len(pcm))
	bitsPerSample := uint16(sampleWidth * 8)
	byteRate := uint32(sampleRate * channels * sampleWidth)
	blockAlign := uint16(channels * sampleWidth)

	w := bufio.NewWriter(out)

	// RIFF header.
	if _, err := w.WriteString("RIFF"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(36)+dataSize); err != nil {
		return err
	}
	if _, err := w.WriteString("WAVE"); err != nil {
		return err
	}

	// fmt chunk.
	if _, err := w.WriteString("fmt "); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(audioFormat)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(channels)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, byteRate); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, blockAlign); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, bitsPerSample); err != nil {
		return err
	}

	// data chunk.
	if _, err := w.WriteString("data"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, dataSize); err != nil {
		return err
	}
	if _, err := w.Write(pcm); err != nil {
		return err
	}
	return w.Flush()
}

// ReadWAVHeader decodes the format fields of a canonical 44-byte WAV header.
func ReadWAVHeader(container []byte) (Header, error) {
	const headerSize = 44
	if len(container) < headerSize {
		return Header{}, fmt.Errorf("container too short: %d bytes", len(container))
	}
	if string(container[0:4]) != "RIFF" || string(container[8:12]) != "WAVE" {
		return Header{}, errors.New("not a RIFF/WAVE container")
	}
	if string(container[12:16]) != "fmt " {
		return Header{}, errors.New("missing fmt chunk")
	}
	channels := int(binary.LittleEndian.Uint16(container[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(container[24:28]))
	bitsPerSample := int(binary.LittleEndian.Uint16(container[34:36]))
	if string(container[36:40]) != "data" {
		return Header{}, errors.New("missing data chunk")
	}
	dataSize := int(binary.LittleEndian.Uint32(container[40:44]))
	return Header{
		SampleRate:  sampleRate,
		Channels:    channels,
		SampleWidth: bitsPerSample / 8,
		DataSize:    dataSize,
	}, nil
}
