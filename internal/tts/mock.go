package tts

import (
	"context"
	"sync"

	"github.com/linguava/linguava/internal/audio"
	"github.com/linguava/linguava/internal/language"
)

// Mock is a test synthesizer that records calls and returns canned audio.
type Mock struct {
	mu    sync.Mutex
	calls []MockCall
	Err   error
	Audio []byte
}

type MockCall struct {
	Text string
	Lang language.Tag
}

func NewMock() *Mock {
	// A tiny but structurally valid WAV so downstream base64 handling sees
	// realistic bytes.
	wav, _ := audio.EncodeWAVPCM16Mono([]byte{0, 0, 1, 0}, 16000)
	return &Mock{Audio: wav}
}

func (m *Mock) Synthesize(_ context.Context, text string, lang language.Tag) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Text: text, Lang: lang})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio, nil
}

func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}
