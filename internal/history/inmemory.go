package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const inMemoryCap = 512

// InMemoryStore keeps a bounded ring of recent exchanges. Used when no
// DATABASE_URL is configured.
type InMemoryStore struct {
	mu    sync.RWMutex
	items []Exchange
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) SaveExchange(_ context.Context, e Exchange) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	if len(s.items) > inMemoryCap {
		s.items = s.items[len(s.items)-inMemoryCap:]
	}
	return nil
}

func (s *InMemoryStore) RecentBySession(_ context.Context, sessionID string, limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Exchange, 0, limit)
	for i := len(s.items) - 1; i >= 0 && len(out) < limit; i-- {
		if s.items[i].SessionID == sessionID {
			out = append(out, s.items[i])
		}
	}
	// Reverse into chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *InMemoryStore) Close() error { return nil }
