package a2a

import (
	"strings"

	"github.com/google/uuid"
)

/*
Message represents all non-artifact communication between client & agent.
*/
type Message struct {
	Role      string         `json:"role"` // "user" or "agent"
	Parts     []Part         `json:"parts"`
	MessageID string         `json:"messageId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewTextMessage builds a single text part message with a fresh message id.
func NewTextMessage(role string, text string) *Message {
	return &Message{
		Role:      role,
		MessageID: uuid.NewString(),
		Parts: []Part{
			{Kind: PartKindText, Text: text},
		},
	}
}

// FirstText returns the text of the first text-typed part, if any.
func (msg *Message) FirstText() (string, bool) {
	for _, part := range msg.Parts {
		if part.Kind == PartKindText {
			return part.Text, true
		}
	}
	return "", false
}

func (msg *Message) String() string {
	var sb strings.Builder

	for _, part := range msg.Parts {
		if part.Kind == PartKindText {
			sb.WriteString(part.Text)
		}
	}

	return sb.String()
}
