package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/store"
	"github.com/pestlead/leadquote/pkg/cryptox"
	"github.com/pestlead/leadquote/pkg/idx"
	"github.com/pestlead/leadquote/pkg/slogx"
)

var (
	ErrEmailTaken   = errors.New("service: a user with this email already exists")
	ErrUserNotFound = errors.New("service: user not found")
	ErrNotAllowed   = errors.New("service: action not permitted")
)

// Placeholder avatars are full Cloudinary delivery URLs; anything shorter
// than this can't be a usable picture reference.
const minProfilePictureURLLen = 11

const maxListLimit = 100

type CreateUserInput struct {
	FullName          string
	Email             string
	Address           string
	Role              domain.Role
	ProfilePictureURL string
}

type UpdateProfileInput struct {
	FullName          *string
	Email             *string
	Address           *string
	Role              *domain.Role
	ProfilePictureURL *string
}

type UserService struct {
	Store store.Store

	// DefaultProfilePictureURL is assigned to new users that come in
	// without a usable picture of their own.
	DefaultProfilePictureURL string
}

// Create provisions a new user in the pending state: no password, inactive,
// holding a fresh one-time setup token. The raw token is returned exactly
// once for the caller to hand to the invited user; only its fingerprint is
// stored.
func (s *UserService) Create(
	ctx context.Context,
	in CreateUserInput,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Generate the setup token. The raw value never touches the store.
	rawToken, err := cryptox.GenerateToken(cryptox.SetupTokenSize)
	if err != nil {
		log.Error("failed to generate setup token", slog.Any("error", err))
		return domain.User{}, "", err
	}
	fingerprint := cryptox.FingerprintToken(rawToken)
	expiresAt := time.Now().UTC().Add(domain.SetupTokenTTL)

	picture := in.ProfilePictureURL
	if len(picture) < minProfilePictureURLLen {
		picture = s.DefaultProfilePictureURL
	}

	user := domain.User{
		ID:                  idx.New().String(),
		FullName:            in.FullName,
		Email:               domain.NormalizeEmail(in.Email),
		Address:             in.Address,
		Role:                in.Role,
		IsActive:            false,
		SetupTokenHash:      &fingerprint,
		SetupTokenExpiresAt: &expiresAt,
		ProfilePictureURL:   picture,
	}

	// 2. Persist. The unique index on email is the source of truth for
	// duplicates.
	created, err := s.Store.Users().CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user created",
		slog.String("user_id", created.ID),
		slog.String("role", created.Role.String()),
	)
	return created, rawToken, nil
}

// Get fetches a single user by id.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// List returns a page of users plus the total match count.
func (s *UserService) List(
	ctx context.Context,
	filter store.ListFilter,
) ([]domain.User, int64, error) {
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.Store.Users().ListUsers(ctx, filter)
}

// UpdateProfile applies a partial profile update on behalf of actor. Users
// may edit their own profile; admins may edit anyone's. Role changes are
// admin-only regardless of whose profile it is.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	actor domain.Identity,
	userID string,
	in UpdateProfileInput,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if !actor.CanManage(userID) {
		log.Warn("profile update denied",
			slog.String("actor_id", actor.UserID),
			slog.String("user_id", userID),
		)
		return domain.User{}, ErrNotAllowed
	}
	if in.Role != nil && !actor.IsAdmin() {
		log.Warn("role change denied", slog.String("actor_id", actor.UserID))
		return domain.User{}, ErrNotAllowed
	}

	patch := store.UserProfilePatch{
		FullName:          in.FullName,
		Address:           in.Address,
		Role:              in.Role,
		ProfilePictureURL: in.ProfilePictureURL,
	}
	if in.Email != nil {
		normalized := domain.NormalizeEmail(*in.Email)
		patch.Email = &normalized
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.User{}, ErrUserNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to update profile",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Info("profile updated",
		slog.String("actor_id", actor.UserID),
		slog.String("user_id", userID),
	)
	return s.Get(ctx, userID)
}

// Deactivate soft-deletes the user. The record stays for audit but the
// account can no longer authenticate and existing sessions stop resolving.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Users().DeactivateUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to deactivate user",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("user deactivated", slog.String("user_id", userID))
	return nil
}
