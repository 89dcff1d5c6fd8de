package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	// FindVerifiedByEmail returns the verified account holding the email.
	FindVerifiedByEmail(ctx context.Context, email string) (*User, error)
	// FindVerifiedByIdentity returns a verified account holding either the
	// email or the phone.
	FindVerifiedByIdentity(ctx context.Context, email, phone string) (*User, error)
	// FindPendingByIdentity returns unverified records matching the email or
	// the phone, newest createdAt first.
	FindPendingByIdentity(ctx context.Context, email, phone string) ([]*User, error)
	// DeletePendingExcept hard-deletes every unverified record matching the
	// identity pair other than keepID.
	DeletePendingExcept(ctx context.Context, keepID uint, email, phone string) error
	// Promote marks the record verified and clears the code fields in a
	// single partial write.
	Promote(ctx context.Context, userID uint) error
	SetVerificationCode(ctx context.Context, userID uint, code string, expiresAt time.Time) error
	SetResetToken(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uint) error
	// FindByResetToken returns the account whose stored token hash matches
	// and whose expiry is after now.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error)
	// CompletePasswordReset sets the new password hash and clears the reset
	// token fields in a single write.
	CompletePasswordReset(ctx context.Context, userID uint, passwordHash string) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthService defines the account authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) error
	VerifyOTP(ctx context.Context, email, phone, otp string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirmPassword string) (*AuthResult, error)
}

// CodeGenerator produces one-time verification codes and reset tokens.
// Persistence of the generated values is the caller's responsibility.
type CodeGenerator interface {
	GenerateVerificationCode() (*VerificationCode, error)
	GenerateResetToken() (*ResetToken, error)
	// HashResetToken applies the same one-way function used at issuance to a
	// plaintext token submitted by a client.
	HashResetToken(plain string) string
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines delivery channel operations
type NotificationService interface {
	SendEmail(to, subject, htmlBody string) error
	// PlaceVerificationCall dials the phone and reads the code out loud.
	PlaceVerificationCall(to, code string) error
}

// IdentityLocker serializes check-then-create registration steps per
// normalized identity pair.
type IdentityLocker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
