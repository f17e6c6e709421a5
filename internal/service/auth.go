package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/store"
	"github.com/pestlead/leadquote/pkg/cryptox"
	"github.com/pestlead/leadquote/pkg/jwtx"
	"github.com/pestlead/leadquote/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password, missing
	// password and deactivated accounts alike, so callers can't probe which
	// one it was.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	ErrInvalidSetupToken = errors.New("service: invalid setup token")
	ErrSetupTokenExpired = errors.New("service: setup token has expired")
)

type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
}

// Login verifies the credentials and mints a session token for the user.
func (s *AuthService) Login(
	ctx context.Context,
	email, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Look the user up by email.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 2. Inactive accounts and accounts that never completed setup fail the
	// same way as a wrong password.
	if !user.CanAuthenticate() {
		log.Warn("login attempt on account that cannot authenticate",
			slog.String("user_id", user.ID),
			slog.Bool("is_active", user.IsActive),
		)
		return domain.User{}, "", ErrInvalidCredentials
	}

	// 3. Verify the password.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempt with wrong password", slog.String("user_id", user.ID))
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("stored password hash is unusable",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, "", err
	}

	// 4. Mint the session token.
	claims := jwtx.NewSessionClaims(
		user.ID, user.Email, user.Role.String(),
		s.SessionTTL, s.Issuer, time.Now().UTC(),
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}

// SetupPassword redeems a one-time setup token: it sets the initial
// password, activates the account and consumes the token. Redemption is
// at-most-once; the conditional update in the store decides the winner of
// any concurrent attempts.
func (s *AuthService) SetupPassword(ctx context.Context, token, password string) error {
	log := slogx.FromContext(ctx)

	// 1. Look the user up by the token fingerprint.
	fingerprint := cryptox.FingerprintToken(token)
	user, err := s.Store.Users().GetUserBySetupTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("setup attempted with unknown or consumed token")
			return ErrInvalidSetupToken
		}
		log.Error("failed to fetch user by setup token", slog.Any("error", err))
		return err
	}

	// 2. Reject expired tokens.
	if user.SetupTokenExpiresAt == nil || user.SetupTokenExpiresAt.Before(time.Now().UTC()) {
		log.Warn("setup attempted with expired token", slog.String("user_id", user.ID))
		return ErrSetupTokenExpired
	}

	// 3. Hash the new password.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	// 4. Persist, conditioned on the token still being unredeemed.
	if err := s.Store.Users().CompleteSetup(ctx, fingerprint, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with a concurrent redemption of the same token.
			log.Warn("setup token consumed concurrently", slog.String("user_id", user.ID))
			return ErrInvalidSetupToken
		}
		log.Error("failed to complete password setup",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("account activated via setup token", slog.String("user_id", user.ID))
	return nil
}
