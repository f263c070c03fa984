package contract

import (
	"context"

	"cv-chatbot-be/internal/entity"
	"cv-chatbot-be/internal/repository/specification"
)

type ChatLogRepository interface {
	Create(ctx context.Context, log *entity.ChatLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error)
	// FindBySession returns a conversation's rows in chronological order.
	FindBySession(ctx context.Context, sessionID string) ([]*entity.ChatLog, error)
}
