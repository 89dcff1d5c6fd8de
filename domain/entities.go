package domain

import "time"

// User represents an account in the system. A user starts out as a pending
// record (AccountVerified=false) holding a one-time verification code and is
// promoted once the code is confirmed. Reset-token fields are populated only
// while a password reset is in flight.
type User struct {
	ID                     uint
	Name                   string
	Email                  string
	Phone                  string
	PasswordHash           string
	Role                   string
	AccountVerified        bool
	VerificationCode       string
	VerificationCodeExpire time.Time
	ResetPasswordToken     string
	ResetPasswordExpire    time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// VerificationMethod selects the delivery channel for a one-time code.
type VerificationMethod string

const (
	VerifyByEmail VerificationMethod = "email"
	VerifyByPhone VerificationMethod = "phone"
)

// RegisterRequest carries the fields required to open a pending registration.
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Method   VerificationMethod
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// VerificationCode is a generated one-time code with its expiry.
type VerificationCode struct {
	Code      string
	ExpiresAt time.Time
}

// ResetToken is a generated password-reset token. Plain is embedded in the
// link mailed to the user; only Hash is persisted.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}
