package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chess-rules/internal/model"
)

// MessageType represents the different kinds of messages exchanged with a client
type MessageType string

const (
	// inbound
	MessageTypeClick   MessageType = "click"
	MessageTypePromote MessageType = "promote"
	MessageTypeReplay  MessageType = "replay"
	MessageTypeExit    MessageType = "exit"

	// outbound
	MessageTypeState MessageType = "state"
	MessageTypeEvent MessageType = "event"
	MessageTypeError MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Click is the payload of a click message.
type Click struct {
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Button string `json:"button"`
}

// Promote is the payload of a promote message.
type Promote struct {
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Piece  string `json:"piece"`
}

type Error struct {
	Message string `json:"message"`
}

func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func StateMessage(v model.View) (Message, error) {
	return NewMessage(MessageTypeState, v)
}

func EventMessage(e model.Event) (Message, error) {
	return NewMessage(MessageTypeEvent, e)
}

func ErrorMessage(text string) Message {
	msg, err := NewMessage(MessageTypeError, Error{Message: text})
	if err != nil {
		return Message{Type: MessageTypeError}
	}
	return msg
}
