package domain

import "errors"

// Registration errors
var (
	ErrInvalidInput    = errors.New("all fields are required")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrIdentityTaken   = errors.New("phone or email is already used")
	ErrTooManyAttempts = errors.New("maximum registration attempts exceeded")
)

// Verification errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrCodeInvalid  = errors.New("invalid verification code")
	ErrCodeExpired  = errors.New("verification code has expired")
)

// Credential errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResetTokenInvalid  = errors.New("reset password token is invalid or has expired")
	ErrPasswordMismatch   = errors.New("password and confirm password do not match")
)

// Delivery errors
var (
	ErrDeliveryFailed = errors.New("verification code failed to send")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)
