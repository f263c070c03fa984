package unitofwork

import (
	"context"

	"cv-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SnippetRepository() contract.SnippetRepository
	ChatLogRepository() contract.ChatLogRepository
}
