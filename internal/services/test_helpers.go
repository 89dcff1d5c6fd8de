package services

import (
	"testing"
	"time"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/mocks"
)

// testAuthConfig returns the policy knobs used across service tests.
func testAuthConfig() AuthConfig {
	return AuthConfig{
		PhonePrefix:         "+91",
		PhoneNationalDigits: 10,
		MaxPendingAttempts:  3,
		OTPTTL:              5 * time.Minute,
		FrontendURL:         "http://localhost:3000",
		AccessTTL:           15 * time.Minute,
		RefreshTTL:          7 * 24 * time.Hour,
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies;
// nil arguments fall back to default mocks.
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	codeGen domain.CodeGenerator,
	notifier domain.NotificationService,
	locker domain.IdentityLocker) domain.AuthService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if sessionRepo == nil {
		sessionRepo = mocks.NewMockSessionRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if codeGen == nil {
		codeGen = mocks.NewMockCodeGenerator()
	}
	if notifier == nil {
		notifier = mocks.NewMockNotificationService()
	}
	if locker == nil {
		locker = mocks.NewMockIdentityLocker()
	}

	return NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc, codeGen, notifier, locker, testAuthConfig())
}

// validRegisterRequest returns a request that passes all input validation.
func validRegisterRequest() *domain.RegisterRequest {
	return &domain.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Phone:    "+911234567890",
		Password: "securepassword123",
		Method:   domain.VerifyByEmail,
	}
}

// createPendingUser creates an unverified user entity for testing
func createPendingUser(t *testing.T, id uint, code string, expiresAt time.Time) *domain.User {
	t.Helper()

	return &domain.User{
		ID:                     id,
		Name:                   "Test User",
		Email:                  "test@example.com",
		Phone:                  "+911234567890",
		PasswordHash:           "hashed_securepassword123",
		Role:                   "user",
		AccountVerified:        false,
		VerificationCode:       code,
		VerificationCodeExpire: expiresAt,
		CreatedAt:              time.Now(),
	}
}

// createVerifiedUser creates a verified user entity for testing
func createVerifiedUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:              1,
		Name:            "Test User",
		Email:           "test@example.com",
		Phone:           "+911234567890",
		PasswordHash:    "hashed_password123",
		Role:            "user",
		AccountVerified: true,
		CreatedAt:       time.Now().Add(-24 * time.Hour),
		UpdatedAt:       time.Now().Add(-time.Hour),
	}
}
