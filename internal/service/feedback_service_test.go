package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/dto"
)

type fakeEmailService struct {
	fromEmail string
	rating    int
	message   string
	err       error
}

func (f *fakeEmailService) SendFeedback(fromEmail string, rating int, message string) error {
	f.fromEmail = fromEmail
	f.rating = rating
	f.message = message
	return f.err
}

func TestSendFeedbackDelivers(t *testing.T) {
	mail := &fakeEmailService{}
	svc := NewFeedbackService(mail, noopLogger{})

	resp, err := svc.SendFeedback(context.Background(), &dto.SendFeedbackRequest{
		Email:   "recruiter@example.com",
		Rating:  5,
		Message: "Great chatbot, answered everything.",
	})
	require.NoError(t, err)

	assert.True(t, resp.Delivered)
	assert.Equal(t, "recruiter@example.com", mail.fromEmail)
	assert.Equal(t, 5, mail.rating)
	assert.Equal(t, "Great chatbot, answered everything.", mail.message)
}

func TestSendFeedbackMailerFailure(t *testing.T) {
	mail := &fakeEmailService{err: errors.New("smtp dial timeout")}
	svc := NewFeedbackService(mail, noopLogger{})

	_, err := svc.SendFeedback(context.Background(), &dto.SendFeedbackRequest{
		Rating:  2,
		Message: "It stopped responding.",
	})
	require.Error(t, err)

	var extErr *apperr.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "mailer", extErr.Service)
}
