package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSignupDisabled     = errors.New("self signup is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrMFARequired        = errors.New("mfa code required")
	ErrMFAInvalid         = errors.New("invalid mfa code")
	ErrMFANotConfigured   = errors.New("mfa setup required")
	ErrMFAUnavailable     = errors.New("mfa requires an encryption key")
	ErrTokenRevoked       = errors.New("token revoked")
)

// PasswordError explains why a password was rejected.
type PasswordError struct {
	Reason string
}

func (e *PasswordError) Error() string {
	return "password " + e.Reason
}
