package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
)

const mfaIssuer = "Pulse"

type Options struct {
	Secret          string
	TokenTTL        time.Duration
	AllowSelfSignup bool
}

type Service struct {
	store   StoreAPI
	revoker Revoker
	sealer  Sealer
	opts    Options
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewService wires the auth flows. revoker may be nil, in which case logout
// only drops the token client side.
func NewService(store StoreAPI, revoker Revoker, sealer Sealer, opts Options, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, revoker: revoker, sealer: sealer, opts: opts, log: log, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if !s.opts.AllowSelfSignup {
		return User{}, ErrSignupDisabled
	}
	if err := ValidatePassword(in.Password); err != nil {
		return User{}, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	return s.store.CreateUser(ctx, NewUser{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         RoleEmployee,
	})
}

func (s *Service) Authenticate(ctx context.Context, email, password, mfaCode string) (Session, error) {
	creds, err := s.store.FindActiveByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	if creds.MFAEnabled {
		if strings.TrimSpace(mfaCode) == "" {
			return Session{}, ErrMFARequired
		}
		if s.sealer == nil {
			return Session{}, ErrMFAInvalid
		}
		secret, err := s.sealer.DecryptString(creds.MFASecretEnc)
		if err != nil || secret == "" || !totp.Validate(mfaCode, secret) {
			return Session{}, ErrMFAInvalid
		}
	}

	token, expires, err := GenerateToken(s.opts.Secret, Claims{UserID: creds.ID, RoleName: creds.Role}, s.opts.TokenTTL)
	if err != nil {
		return Session{}, err
	}

	if err := s.store.UpdateLastLogin(ctx, creds.ID); err != nil {
		s.log.WithField("userId", creds.ID).WithError(err).Warn("update last_login failed")
	}

	return Session{Token: token, ExpiresAt: expires, User: creds.User}, nil
}

// Logout denylists the token id for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, user UserContext) error {
	if s.revoker == nil || user.TokenID == "" {
		return nil
	}
	ttl := user.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, user.TokenID, ttl)
}

// TokenActive reports whether a verified token has not been revoked.
func (s *Service) TokenActive(ctx context.Context, tokenID string) (bool, error) {
	if s.revoker == nil || tokenID == "" {
		return true, nil
	}
	revoked, err := s.revoker.IsRevoked(ctx, tokenID)
	if err != nil {
		return false, err
	}
	return !revoked, nil
}

func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	return s.store.GetUser(ctx, userID)
}

func (s *Service) SetupMFA(ctx context.Context, userID string) (MFASetup, error) {
	if s.sealer == nil || !s.sealer.Configured() {
		return MFASetup{}, ErrMFAUnavailable
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return MFASetup{}, err
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      mfaIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return MFASetup{}, err
	}
	sealed, err := s.sealer.EncryptString(key.Secret())
	if err != nil {
		return MFASetup{}, err
	}
	if err := s.store.UpdateMFASecret(ctx, userID, sealed); err != nil {
		return MFASetup{}, err
	}
	return MFASetup{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

func (s *Service) EnableMFA(ctx context.Context, userID, code string) error {
	if err := s.verifyStoredCode(ctx, userID, code); err != nil {
		return err
	}
	return s.store.SetMFAEnabled(ctx, userID, true)
}

func (s *Service) DisableMFA(ctx context.Context, userID, code string) error {
	if err := s.verifyStoredCode(ctx, userID, code); err != nil {
		return err
	}
	return s.store.SetMFAEnabled(ctx, userID, false)
}

func (s *Service) verifyStoredCode(ctx context.Context, userID, code string) error {
	if s.sealer == nil || !s.sealer.Configured() {
		return ErrMFAUnavailable
	}
	sealed, err := s.store.GetMFASecret(ctx, userID)
	if err != nil {
		return err
	}
	if len(sealed) == 0 {
		return ErrMFANotConfigured
	}
	secret, err := s.sealer.DecryptString(sealed)
	if err != nil {
		return ErrMFAInvalid
	}
	if !totp.Validate(code, secret) {
		return ErrMFAInvalid
	}
	return nil
}

// ValidatePassword enforces length and character-class rules on new passwords.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return &PasswordError{Reason: "must be at least 8 characters"}
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return &PasswordError{Reason: "must contain upper and lower case letters and a number"}
	}
	return nil
}
