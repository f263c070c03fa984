package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"cv-chatbot-be/internal/entity"
	"cv-chatbot-be/internal/pkg/logger"
	"cv-chatbot-be/internal/repository/unitofwork"
	"cv-chatbot-be/pkg/audit"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit topic and persists entries into the
// chat log table. A failed write is Nacked for redelivery; an entry
// that cannot be decoded is Acked so it does not loop forever.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var entry audit.Entry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		cs.log.Error("AUDIT", "failed to unmarshal audit entry", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err := uow.ChatLogRepository().Create(ctx, &entity.ChatLog{
		Id:             uuid.New(),
		SessionID:      entry.SessionID,
		UserID:         entry.UserID,
		Timestamp:      entry.Timestamp,
		Role:           entry.Role,
		Message:        entry.Message,
		Intent:         entry.Intent,
		ModelUsed:      entry.ModelUsed,
		EmbeddingSize:  entry.EmbeddingSize,
		ContextSnippet: entry.ContextSnippet,
		Prompt:         entry.Prompt,
		MessageType:    entry.MessageType,
	})
	if err != nil {
		cs.log.Error("AUDIT", "failed to persist chat log", map[string]interface{}{
			"session_id": entry.SessionID,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
