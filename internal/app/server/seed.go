package server

import (
	"context"
	"errors"
	"strings"

	"pulse/internal/domain/auth"
	"pulse/internal/platform/config"
	"pulse/internal/platform/logging"
)

type seedStore interface {
	FindActiveByEmail(ctx context.Context, email string) (auth.Credentials, error)
	CreateUser(ctx context.Context, user auth.NewUser) (auth.User, error)
}

// seedAdmin creates the first admin account once. An existing account with
// the same email is left untouched.
func seedAdmin(ctx context.Context, store seedStore, cfg config.Config, log *logging.Logger) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" || cfg.SeedAdminPassword == "" {
		log.Info("seed admin not configured, skipping")
		return nil
	}

	_, err := store.FindActiveByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = store.CreateUser(ctx, auth.NewUser{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Pulse",
		LastName:     "Admin",
		Role:         auth.RoleAdmin,
	})
	if errors.Is(err, auth.ErrEmailTaken) {
		// disabled account with the same email
		return nil
	}
	if err != nil {
		return err
	}
	log.WithField("email", email).Info("seeded admin account")
	return nil
}
