package auth

import (
	"context"
	"time"
)

type StoreAPI interface {
	FindActiveByEmail(ctx context.Context, email string) (Credentials, error)
	GetUser(ctx context.Context, userID string) (User, error)
	CreateUser(ctx context.Context, user NewUser) (User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	GetMFASecret(ctx context.Context, userID string) ([]byte, error)
	UpdateMFASecret(ctx context.Context, userID string, secretEnc []byte) error
	SetMFAEnabled(ctx context.Context, userID string, enabled bool) error
}

// Revoker keeps a denylist of token ids until their natural expiry.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Sealer encrypts MFA secrets at rest.
type Sealer interface {
	Configured() bool
	EncryptString(value string) ([]byte, error)
	DecryptString(sealed []byte) (string, error)
}
