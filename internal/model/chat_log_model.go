package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatLog struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID      string    `gorm:"column:session_id;index"`
	UserID         string    `gorm:"column:user_id;index"`
	Timestamp      time.Time `gorm:"column:timestamp"`
	Role           string    `gorm:"column:role"`
	Message        string    `gorm:"column:message;type:text"`
	Intent         string    `gorm:"column:intent"`
	ModelUsed      string    `gorm:"column:model_used"`
	EmbeddingSize  string    `gorm:"column:embedding_size"`
	ContextSnippet string    `gorm:"column:context_snippet;type:text"`
	Prompt         string    `gorm:"column:prompt;type:text"`
	MessageType    string    `gorm:"column:message_type"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
