package notifications

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// MailerService sends HTML email via SMTP.
type MailerService struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerService creates a new SMTP mailer
func NewMailerService(host string, port int, username, password, from string) *MailerService {
	return &MailerService{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendEmail delivers an HTML message to a single recipient.
func (s *MailerService) SendEmail(to, subject, htmlBody string) error {
	// If SMTP is not configured, log instead of sending
	if s.from == "" {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
