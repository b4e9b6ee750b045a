package brain

import (
	"context"
	"sync"
)

// Mock is a test Generator with scripted replies.
type Mock struct {
	mu      sync.Mutex
	calls   []MockCall
	Reply   string
	Err     error
	Blocked chan struct{} // when non-nil, Generate waits until closed
}

type MockCall struct {
	Prompt string
	WAV    []byte
}

func NewMock(reply string) *Mock {
	return &Mock{Reply: reply}
}

func (m *Mock) Generate(ctx context.Context, prompt string, wav []byte) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Prompt: prompt, WAV: wav})
	blocked := m.Blocked
	m.mu.Unlock()

	if blocked != nil {
		select {
		case <-blocked:
		case <-ctx.Done():
		}
	}
	if m.Err != nil {
		return FallbackReply, m.Err
	}
	return m.Reply, nil
}

func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}
