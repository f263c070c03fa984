package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatLog is one audited utterance. Optional fields stay empty on the
// branches that never touched a model or the snippet store.
type ChatLog struct {
	Id             uuid.UUID
	SessionID      string
	UserID         string
	Timestamp      time.Time
	Role           string
	Message        string
	Intent         string
	ModelUsed      string
	EmbeddingSize  string
	ContextSnippet string
	Prompt         string
	MessageType    string
}
