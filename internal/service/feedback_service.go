package service

import (
	"context"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/dto"
	"cv-chatbot-be/internal/pkg/logger"
	"cv-chatbot-be/internal/pkg/mailer"
)

type IFeedbackService interface {
	SendFeedback(ctx context.Context, req *dto.SendFeedbackRequest) (*dto.SendFeedbackResponse, error)
}

type feedbackService struct {
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewFeedbackService(emailService mailer.IEmailService, log logger.ILogger) IFeedbackService {
	return &feedbackService{
		emailService: emailService,
		log:          log,
	}
}

func (s *feedbackService) SendFeedback(_ context.Context, req *dto.SendFeedbackRequest) (*dto.SendFeedbackResponse, error) {
	if err := s.emailService.SendFeedback(req.Email, req.Rating, req.Message); err != nil {
		return nil, apperr.External("mailer", err)
	}

	s.log.Info("FEEDBACK", "feedback delivered", map[string]interface{}{
		"rating":    req.Rating,
		"has_email": req.Email != "",
	})

	return &dto.SendFeedbackResponse{Delivered: true}, nil
}
