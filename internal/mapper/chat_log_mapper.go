package mapper

import (
	"cv-chatbot-be/internal/entity"
	"cv-chatbot-be/internal/model"
)

type ChatLogMapper struct{}

func NewChatLogMapper() *ChatLogMapper {
	return &ChatLogMapper{}
}

func (m *ChatLogMapper) ToEntity(l *model.ChatLog) *entity.ChatLog {
	if l == nil {
		return nil
	}

	return &entity.ChatLog{
		Id:             l.Id,
		SessionID:      l.SessionID,
		UserID:         l.UserID,
		Timestamp:      l.Timestamp,
		Role:           l.Role,
		Message:        l.Message,
		Intent:         l.Intent,
		ModelUsed:      l.ModelUsed,
		EmbeddingSize:  l.EmbeddingSize,
		ContextSnippet: l.ContextSnippet,
		Prompt:         l.Prompt,
		MessageType:    l.MessageType,
	}
}

func (m *ChatLogMapper) ToModel(l *entity.ChatLog) *model.ChatLog {
	if l == nil {
		return nil
	}

	return &model.ChatLog{
		Id:             l.Id,
		SessionID:      l.SessionID,
		UserID:         l.UserID,
		Timestamp:      l.Timestamp,
		Role:           l.Role,
		Message:        l.Message,
		Intent:         l.Intent,
		ModelUsed:      l.ModelUsed,
		EmbeddingSize:  l.EmbeddingSize,
		ContextSnippet: l.ContextSnippet,
		Prompt:         l.Prompt,
		MessageType:    l.MessageType,
	}
}

func (m *ChatLogMapper) ToEntities(logs []*model.ChatLog) []*entity.ChatLog {
	entities := make([]*entity.ChatLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
