package history

import (
	"context"
	"fmt"
	"testing"
)

func TestInMemoryStoreSaveAndRecent(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := s.SaveExchange(ctx, Exchange{
			SessionID:    "s1",
			Language:     "english",
			ResponseText: fmt.Sprintf("reply %d", i),
		})
		if err != nil {
			t.Fatalf("SaveExchange() error = %v", err)
		}
	}
	if err := s.SaveExchange(ctx, Exchange{SessionID: "s2", ResponseText: "other"}); err != nil {
		t.Fatalf("SaveExchange() error = %v", err)
	}

	got, err := s.RecentBySession(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("RecentBySession() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Chronological order: oldest of the returned window first.
	if got[0].ResponseText != "reply 1" || got[1].ResponseText != "reply 2" {
		t.Fatalf("unexpected window: %q, %q", got[0].ResponseText, got[1].ResponseText)
	}
	if got[0].ID == "" || got[0].CreatedAt.IsZero() {
		t.Fatalf("SaveExchange() should fill ID and CreatedAt: %+v", got[0])
	}
}

func TestInMemoryStoreBounded(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	for i := 0; i < inMemoryCap+10; i++ {
		if err := s.SaveExchange(ctx, Exchange{SessionID: "s1"}); err != nil {
			t.Fatalf("SaveExchange() error = %v", err)
		}
	}
	s.mu.RLock()
	n := len(s.items)
	s.mu.RUnlock()
	if n != inMemoryCap {
		t.Fatalf("stored items = %d, want %d", n, inMemoryCap)
	}
}

func TestNewStoreDefaultsToInMemory(t *testing.T) {
	store, err := NewStore(context.Background(), "  ")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if _, ok := store.(*InMemoryStore); !ok {
		t.Fatalf("store type = %T, want *InMemoryStore", store)
	}
}
