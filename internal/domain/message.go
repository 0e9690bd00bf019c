package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message is a stored chat message. Parts are kept in order of creation.
type Message struct {
	ID        uuid.UUID
	ChatID    uuid.UUID
	Role      MessageRole
	Parts     []MessagePart
	CreatedAt time.Time
}

// MessagePart is one typed piece of a message. Text parts carry Text,
// auxiliary parts (feedback, transcriptions) carry a JSON payload in Data.
type MessagePart struct {
	Type PartType        `json:"type"`
	Text string          `json:"text,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewFeedbackPart wraps a FeedbackResult as a language-feedback part.
func NewFeedbackPart(result FeedbackResult) (MessagePart, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return MessagePart{}, fmt.Errorf("marshal feedback part: %w", err)
	}
	return MessagePart{Type: PartTypeLanguageFeedback, Data: data}, nil
}

// FeedbackParts decodes all language-feedback parts of the message.
func (m Message) FeedbackParts() ([]FeedbackResult, error) {
	var out []FeedbackResult
	for _, p := range m.Parts {
		if p.Type != PartTypeLanguageFeedback {
			continue
		}
		var r FeedbackResult
		if err := json.Unmarshal(p.Data, &r); err != nil {
			return nil, fmt.Errorf("decode feedback part: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Text concatenates the text parts of the message.
func (m Message) Text() string {
	var s string
	for _, p := range m.Parts {
		if p.Type == PartTypeText {
			s += p.Text
		}
	}
	return s
}
