package mocks

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/you/accountsvc/domain"
)

// MockCodeGenerator implements domain.CodeGenerator interface for testing
type MockCodeGenerator struct {
	GenerateVerificationCodeFunc func() (*domain.VerificationCode, error)
	GenerateResetTokenFunc       func() (*domain.ResetToken, error)
	HashResetTokenFunc           func(plain string) string
}

// NewMockCodeGenerator creates a new MockCodeGenerator with default behaviors
func NewMockCodeGenerator() *MockCodeGenerator {
	return &MockCodeGenerator{}
}

func (m *MockCodeGenerator) GenerateVerificationCode() (*domain.VerificationCode, error) {
	if m.GenerateVerificationCodeFunc != nil {
		return m.GenerateVerificationCodeFunc()
	}
	// Default behavior: deterministic code, 5 minutes out
	return &domain.VerificationCode{
		Code:      "12345",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

func (m *MockCodeGenerator) GenerateResetToken() (*domain.ResetToken, error) {
	if m.GenerateResetTokenFunc != nil {
		return m.GenerateResetTokenFunc()
	}
	plain := "test-reset-token"
	return &domain.ResetToken{
		Plain:     plain,
		Hash:      m.HashResetToken(plain),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func (m *MockCodeGenerator) HashResetToken(plain string) string {
	if m.HashResetTokenFunc != nil {
		return m.HashResetTokenFunc(plain)
	}
	// Default behavior: the real one-way function, so issued and submitted
	// tokens agree in tests
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Compile-time interface compliance verification
var _ domain.CodeGenerator = (*MockCodeGenerator)(nil)
