package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/internal/dto"
	"cv-chatbot-be/internal/pkg/logger"
	"cv-chatbot-be/internal/repository/unitofwork"
	"cv-chatbot-be/pkg/rag/dispatch"
	"cv-chatbot-be/pkg/rag/session"
)

type IChatbotService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*dto.ResetSessionResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	ExportChat(ctx context.Context, sessionID, format string) (*dto.ExportChatResponse, error)
}

type chatbotService struct {
	store      session.Store
	dispatcher *dispatch.Dispatcher
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewChatbotService(
	store session.Store,
	dispatcher *dispatch.Dispatcher,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		store:      store,
		dispatcher: dispatcher,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *chatbotService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	sess := session.New(uuid.NewString(), req.UserId)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info("CHATBOT", "session created", map[string]interface{}{
		"session_id": sess.ID,
	})

	return &dto.CreateSessionResponse{
		SessionId: sess.ID,
		Greeting:  constant.InitialAssistantMessage,
		Settings:  settingsOf(sess),
	}, nil
}

func (s *chatbotService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sess, err := s.load(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	if sess.ErrorFlag {
		// A previous failure locked this conversation. Only an
		// explicit reset reopens it.
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, constant.ServiceUnavailableMessage)
	}

	result, err := s.dispatcher.Dispatch(ctx, sess, req.Message)
	if err != nil {
		s.handleDispatchFailure(ctx, sess, err)
		return nil, err
	}

	if result == nil {
		// Blank input: nothing was asked, nothing is answered.
		return &dto.SendChatResponse{SessionId: sess.ID}, nil
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		SessionId: sess.ID,
		Intent:    result.Intent,
		Reply:     result.Reply,
		Speech:    result.Speech,
	}, nil
}

// handleDispatchFailure wipes the conversation and locks the session
// after any external or contract failure. The wiped state is saved on
// a best-effort basis.
func (s *chatbotService) handleDispatchFailure(ctx context.Context, sess *session.Session, err error) {
	var extErr *apperr.ExternalServiceError
	var malformedErr *apperr.MalformedOutputError
	if !errors.As(err, &extErr) && !errors.As(err, &malformedErr) {
		return
	}

	wiped := session.New(sess.ID, sess.UserID)
	wiped.Model = sess.Model
	wiped.EmbeddingDim = sess.EmbeddingDim
	wiped.IncludeHistory = sess.IncludeHistory
	wiped.VoiceEnabled = sess.VoiceEnabled
	wiped.ErrorFlag = true
	*sess = *wiped

	if saveErr := s.store.Save(ctx, sess); saveErr != nil {
		s.log.Error("CHATBOT", "failed to persist wiped session", map[string]interface{}{
			"session_id": sess.ID,
			"error":      saveErr.Error(),
		})
	}

	s.log.Error("CHATBOT", "conversation locked after failure", map[string]interface{}{
		"session_id": sess.ID,
		"error":      err.Error(),
	})
}

func (s *chatbotService) GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		// The live session may have expired while its audit trail
		// survived in chat_logs. Rebuild the transcript from there.
		return s.historyFromAuditLog(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}

	turns := make([]dto.TurnDTO, len(sess.Turns))
	for i, turn := range sess.Turns {
		turns[i] = dto.TurnDTO{
			Role:      turn.Role,
			Text:      turn.Text,
			Intent:    turn.Intent,
			CreatedAt: turn.CreatedAt,
		}
	}

	return &dto.GetHistoryResponse{
		SessionId: sess.ID,
		Turns:     turns,
	}, nil
}

func (s *chatbotService) historyFromAuditLog(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.ChatLogRepository().FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	turns := make([]dto.TurnDTO, len(logs))
	for i, row := range logs {
		turns[i] = dto.TurnDTO{
			Role:      row.Role,
			Text:      row.Message,
			Intent:    row.Intent,
			CreatedAt: row.Timestamp,
		}
	}

	return &dto.GetHistoryResponse{
		SessionId: sessionID,
		Turns:     turns,
	}, nil
}

func (s *chatbotService) ResetSession(ctx context.Context, sessionID string) (*dto.ResetSessionResponse, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fresh := session.New(sess.ID, sess.UserID)
	fresh.Model = sess.Model
	fresh.EmbeddingDim = sess.EmbeddingDim
	fresh.IncludeHistory = sess.IncludeHistory
	fresh.VoiceEnabled = sess.VoiceEnabled

	if err := s.store.Save(ctx, fresh); err != nil {
		return nil, err
	}

	return &dto.ResetSessionResponse{
		SessionId: fresh.ID,
		Greeting:  constant.InitialAssistantMessage,
	}, nil
}

func (s *chatbotService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	sess, err := s.load(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	if req.Model != nil {
		if !isAvailableModel(*req.Model) {
			return nil, &apperr.UnsupportedConfigError{Field: "model", Value: *req.Model}
		}
		sess.Model = *req.Model
	}
	if req.EmbeddingSize != nil {
		if *req.EmbeddingSize != constant.EmbeddingDim768 && *req.EmbeddingSize != constant.EmbeddingDim1024 {
			return nil, &apperr.UnsupportedConfigError{Field: "embedding_size", Value: *req.EmbeddingSize}
		}
		sess.EmbeddingDim = *req.EmbeddingSize
	}
	if req.IncludeHistory != nil {
		sess.IncludeHistory = *req.IncludeHistory
	}
	if req.VoiceEnabled != nil {
		sess.VoiceEnabled = *req.VoiceEnabled
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	resp := settingsOf(sess)
	return &resp, nil
}

func (s *chatbotService) ExportChat(ctx context.Context, sessionID, format string) (*dto.ExportChatResponse, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	content, err := exportTurns(sess.Turns, format)
	if err != nil {
		return nil, err
	}

	return &dto.ExportChatResponse{
		SessionId: sess.ID,
		Format:    format,
		Content:   content,
	}, nil
}

func (s *chatbotService) load(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func settingsOf(sess *session.Session) dto.SettingsResponse {
	return dto.SettingsResponse{
		Model:              sess.Model,
		EmbeddingSize:      sess.EmbeddingDim,
		IncludeHistory:     sess.IncludeHistory,
		VoiceEnabled:       sess.VoiceEnabled,
		AvailableModels:    constant.AvailableModels,
		AvailableEmbedding: []string{constant.EmbeddingDim768, constant.EmbeddingDim1024},
	}
}

func isAvailableModel(model string) bool {
	for _, m := range constant.AvailableModels {
		if m == model {
			return true
		}
	}
	return false
}
