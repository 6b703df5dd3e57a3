package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged over a game socket
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeTurn      MessageType = "turn"
	MessageTypeControl   MessageType = "control"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries algebraic square names, e.g. {"from":"e2","to":"e4"}.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ControlPayload asks the game to start, pause, resume or stop.
type ControlPayload struct {
	Action string `json:"action"`
}

// ErrorPayload is sent back when a message could not be applied.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
