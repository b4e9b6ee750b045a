package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	// Inbound (game client -> server).
	TypePing         MessageType = "PING"
	TypePlayerAction MessageType = "PLAYER_ACTION_WITH_AUDIO"

	// Outbound (server -> game client).
	TypePong       MessageType = "PONG"
	TypeAIResponse MessageType = "AI_RESPONSE"
	TypeError      MessageType = "ERROR"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// PlayerState mirrors the per-request player snapshot sent by the game mod.
// Every field is optional; the prompt builder supplies fallbacks.
type PlayerState struct {
	Position string `json:"position,omitempty"`
	Health   *int   `json:"health,omitempty"`
	Hunger   *int   `json:"hunger,omitempty"`
	HeldItem string `json:"heldItem,omitempty"`
}

// TargetState describes the entity or block the player is looking at.
type TargetState struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

// WorldState carries biome, time-of-day and weather.
type WorldState struct {
	Biome     string `json:"biome,omitempty"`
	TimeOfDay int    `json:"timeOfDay"`
	Raining   bool   `json:"raining"`
}

// GameState is the ephemeral snapshot received with each audio request.
// It has no identity beyond the single request and is never persisted.
type GameState struct {
	Player PlayerState `json:"player"`
	Target TargetState `json:"target"`
	World  WorldState  `json:"world"`
}

type Ping struct {
	Type MessageType `json:"type"`
}

// PlayerAction carries one utterance of base64 PCM audio plus game context.
// Timestamp is an opaque client clock value, echoed back unmodified.
type PlayerAction struct {
	Type       MessageType `json:"type"`
	AudioChunk string      `json:"audioChunk"`
	GameState  GameState   `json:"gameState"`
	Timestamp  int64       `json:"timestamp"`
}

type Pong struct {
	Type MessageType `json:"type"`
}

type AIResponse struct {
	Type      MessageType `json:"type"`
	Text      string      `json:"text"`
	AudioData string      `json:"audioData"`
	Timestamp int64       `json:"timestamp"`
}

type Error struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// NewPong builds the keepalive reply.
func NewPong() Pong { return Pong{Type: TypePong} }

// NewAIResponse builds a response envelope echoing the request timestamp.
func NewAIResponse(text, audioBase64 string, timestamp int64) AIResponse {
	return AIResponse{Type: TypeAIResponse, Text: text, AudioData: audioBase64, Timestamp: timestamp}
}

// NewError builds an error envelope with a client-safe message.
func NewError(message string) Error {
	return Error{Type: TypeError, Message: message}
}

// ParseClientMessage decodes one inbound envelope into its concrete type.
func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypePing:
		return Ping{Type: TypePing}, nil
	case TypePlayerAction:
		var msg PlayerAction
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", TypePlayerAction, err)
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// MessageTypeOf reports the wire type of an outbound or parsed message.
func MessageTypeOf(v any) (MessageType, bool) {
	switch m := v.(type) {
	case Ping:
		return m.Type, true
	case PlayerAction:
		return m.Type, true
	case Pong:
		return m.Type, true
	case AIResponse:
		return m.Type, true
	case Error:
		return m.Type, true
	default:
		return "", false
	}
}
