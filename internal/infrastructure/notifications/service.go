package notifications

import "github.com/you/accountsvc/domain"

// Service composes the email and voice channels into the single
// domain.NotificationService capability the workflows depend on.
type Service struct {
	mailer *MailerService
	voice  *TwilioVoiceService
}

// NewService creates the composite notification service
func NewService(mailer *MailerService, voice *TwilioVoiceService) domain.NotificationService {
	return &Service{mailer: mailer, voice: voice}
}

// SendEmail implements domain.NotificationService
func (s *Service) SendEmail(to, subject, htmlBody string) error {
	return s.mailer.SendEmail(to, subject, htmlBody)
}

// PlaceVerificationCall implements domain.NotificationService
func (s *Service) PlaceVerificationCall(to, code string) error {
	return s.voice.PlaceVerificationCall(to, code)
}
