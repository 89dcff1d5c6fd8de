package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestRegistrationErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrInvalidInput", err: ErrInvalidInput, expectedMsg: "all fields are required"},
		{name: "ErrInvalidPhone", err: ErrInvalidPhone, expectedMsg: "invalid phone number"},
		{name: "ErrIdentityTaken", err: ErrIdentityTaken, expectedMsg: "phone or email is already used"},
		{name: "ErrTooManyAttempts", err: ErrTooManyAttempts, expectedMsg: "maximum registration attempts exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			for _, other := range tests {
				if other.name != tt.name && errors.Is(tt.err, other.err) {
					t.Errorf("error %s should not be equal to %s", tt.name, other.name)
				}
			}
		})
	}
}

func TestVerificationErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrUserNotFound", err: ErrUserNotFound, expectedMsg: "user not found"},
		{name: "ErrCodeInvalid", err: ErrCodeInvalid, expectedMsg: "invalid verification code"},
		{name: "ErrCodeExpired", err: ErrCodeExpired, expectedMsg: "verification code has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestCredentialErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrInvalidCredentials", err: ErrInvalidCredentials, expectedMsg: "invalid email or password"},
		{name: "ErrResetTokenInvalid", err: ErrResetTokenInvalid, expectedMsg: "reset password token is invalid or has expired"},
		{name: "ErrPasswordMismatch", err: ErrPasswordMismatch, expectedMsg: "password and confirm password do not match"},
		{name: "ErrDeliveryFailed", err: ErrDeliveryFailed, expectedMsg: "verification code failed to send"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	// Workflows wrap store errors with context; errors.Is must still match.
	wrapped := fmt.Errorf("failed to create user: %w", ErrIdentityTaken)

	if !errors.Is(wrapped, ErrIdentityTaken) {
		t.Error("wrapped error should match its sentinel")
	}
	if errors.Is(wrapped, ErrTooManyAttempts) {
		t.Error("wrapped error should not match unrelated sentinel")
	}
}

func TestTokenAndSessionErrors(t *testing.T) {
	sentinels := []error{
		ErrTokenInvalid,
		ErrTokenExpired,
		ErrTokenMalformed,
		ErrSessionNotFound,
		ErrSessionExpired,
		ErrUnauthenticated,
		ErrInsufficientRole,
	}

	seen := make(map[string]bool)
	for _, err := range sentinels {
		if err == nil {
			t.Fatal("sentinel should not be nil")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate error message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}
