package mocks

import (
	"context"
	"time"

	"github.com/you/accountsvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                 func(ctx context.Context, user *domain.User) error
	FindByIDFunc               func(ctx context.Context, id uint) (*domain.User, error)
	FindVerifiedByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindVerifiedByIdentityFunc func(ctx context.Context, email, phone string) (*domain.User, error)
	FindPendingByIdentityFunc  func(ctx context.Context, email, phone string) ([]*domain.User, error)
	DeletePendingExceptFunc    func(ctx context.Context, keepID uint, email, phone string) error
	PromoteFunc                func(ctx context.Context, userID uint) error
	SetVerificationCodeFunc    func(ctx context.Context, userID uint, code string, expiresAt time.Time) error
	SetResetTokenFunc          func(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error
	ClearResetTokenFunc        func(ctx context.Context, userID uint) error
	FindByResetTokenFunc       func(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	CompletePasswordResetFunc  func(ctx context.Context, userID uint, passwordHash string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindVerifiedByEmailFunc != nil {
		return m.FindVerifiedByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindVerifiedByIdentity(ctx context.Context, email, phone string) (*domain.User, error) {
	if m.FindVerifiedByIdentityFunc != nil {
		return m.FindVerifiedByIdentityFunc(ctx, email, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindPendingByIdentity(ctx context.Context, email, phone string) ([]*domain.User, error) {
	if m.FindPendingByIdentityFunc != nil {
		return m.FindPendingByIdentityFunc(ctx, email, phone)
	}
	// Default behavior: no pending registrations
	return nil, nil
}

func (m *MockUserRepository) DeletePendingExcept(ctx context.Context, keepID uint, email, phone string) error {
	if m.DeletePendingExceptFunc != nil {
		return m.DeletePendingExceptFunc(ctx, keepID, email, phone)
	}
	return nil
}

func (m *MockUserRepository) Promote(ctx context.Context, userID uint) error {
	if m.PromoteFunc != nil {
		return m.PromoteFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) SetVerificationCode(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
	if m.SetVerificationCodeFunc != nil {
		return m.SetVerificationCodeFunc(ctx, userID, code, expiresAt)
	}
	return nil
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, userID, tokenHash, expiresAt)
	}
	return nil
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, userID uint) error {
	if m.ClearResetTokenFunc != nil {
		return m.ClearResetTokenFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, tokenHash, now)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) CompletePasswordReset(ctx context.Context, userID uint, passwordHash string) error {
	if m.CompletePasswordResetFunc != nil {
		return m.CompletePasswordResetFunc(ctx, userID, passwordHash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
