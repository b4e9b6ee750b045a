// Package history records completed AI exchanges for later review. Writes
// are best-effort and never sit on the reply critical path.
package history

import (
	"context"
	"time"
)

// Exchange stores one completed audio request/response pair.
type Exchange struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	Language        string    `json:"language"`
	ResponseText    string    `json:"response_text"`
	HadAudio        bool      `json:"had_audio"`
	ClientTimestamp int64     `json:"client_timestamp"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store persists and retrieves exchange records.
type Store interface {
	SaveExchange(ctx context.Context, e Exchange) error
	RecentBySession(ctx context.Context, sessionID string, limit int) ([]Exchange, error)
	Close() error
}
