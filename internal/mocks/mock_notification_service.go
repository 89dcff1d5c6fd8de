package mocks

import "github.com/you/accountsvc/domain"

// SentEmail records one SendEmail call
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// PlacedCall records one PlaceVerificationCall call
type PlacedCall struct {
	To   string
	Code string
}

// MockNotificationService implements domain.NotificationService interface for
// testing. Deliveries are recorded so tests can assert on channel and payload.
type MockNotificationService struct {
	SendEmailFunc             func(to, subject, htmlBody string) error
	PlaceVerificationCallFunc func(to, code string) error

	Emails []SentEmail
	Calls  []PlacedCall
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendEmail(to, subject, htmlBody string) error {
	m.Emails = append(m.Emails, SentEmail{To: to, Subject: subject, Body: htmlBody})
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, htmlBody)
	}
	return nil
}

func (m *MockNotificationService) PlaceVerificationCall(to, code string) error {
	m.Calls = append(m.Calls, PlacedCall{To: to, Code: code})
	if m.PlaceVerificationCallFunc != nil {
		return m.PlaceVerificationCallFunc(to, code)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
