package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFeedback(fromEmail string, rating int, message string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	inboxEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, inboxEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		inboxEmail:  inboxEmail,
	}
}

func (s *emailService) SendFeedback(fromEmail string, rating int, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.inboxEmail)
	m.SetHeader("Subject", "New chatbot feedback")
	if fromEmail != "" {
		m.SetHeader("Reply-To", fromEmail)
	}

	sender := "anonymous"
	if fromEmail != "" {
		sender = html.EscapeString(fromEmail)
	}
	ratingLine := "not given"
	if rating > 0 {
		ratingLine = fmt.Sprintf("%d/5", rating)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Chatbot Feedback</h2>
			<p><strong>From:</strong> %s</p>
			<p><strong>Rating:</strong> %s</p>
			<p>%s</p>
		</div>
	`, sender, ratingLine, strings.ReplaceAll(html.EscapeString(message), "\n", "<br>"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send feedback mail: %v\n", err)
		return err
	}

	fmt.Printf("[MAILER] Feedback mail delivered to %s\n", s.inboxEmail)
	return nil
}
