package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"cv-chatbot-be/internal/constant"
)

// Entry mirrors one row of the chat audit table. User and assistant
// messages produce one entry each; the long free-text fields are
// truncated before publishing so downstream storage sees bounded rows.
type Entry struct {
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Role           string    `json:"role"`
	Message        string    `json:"message"`
	Intent         string    `json:"intent,omitempty"`
	ModelUsed      string    `json:"model_used,omitempty"`
	EmbeddingSize  string    `json:"embedding_size,omitempty"`
	ContextSnippet string    `json:"context_snippet,omitempty"`
	Prompt         string    `json:"prompt,omitempty"`
	MessageType    string    `json:"message_type"`
}

// Truncate caps the free-text fields at their storage limits.
func (e *Entry) Truncate() {
	e.Message = clip(e.Message, constant.MaxUserMessageLength)
	e.ContextSnippet = clip(e.ContextSnippet, constant.MaxContextLogLength)
	e.Prompt = clip(e.Prompt, constant.MaxPromptLogLength)
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}

// Publisher sends audit entries onto the message bus. Persistence
// happens asynchronously in the consumer so a slow write never blocks
// a chat response.
type Publisher interface {
	Publish(ctx context.Context, entry Entry) error
}

type busPublisher struct {
	publisher message.Publisher
	topic     string
}

func NewPublisher(publisher message.Publisher, topic string) Publisher {
	return &busPublisher{publisher: publisher, topic: topic}
}

func (p *busPublisher) Publish(_ context.Context, entry Entry) error {
	entry.Truncate()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return p.publisher.Publish(p.topic, message.NewMessage(watermill.NewUUID(), payload))
}
