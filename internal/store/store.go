package store

import (
	"context"
	"errors"

	"github.com/pestlead/leadquote/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// UserProfilePatch carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type UserProfilePatch struct {
	FullName          *string
	Email             *string // pre-normalized by the caller
	Address           *string
	Role              *domain.Role
	ProfilePictureURL *string
}

// ListFilter narrows and pages a user listing.
type ListFilter struct {
	Search   string // matched against full name and email
	Role     *domain.Role
	IsActive *bool
	Page     int // 1-based
	Limit    int
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserBySetupTokenHash looks a user up by the fingerprint of an
	// outstanding password-setup token.
	GetUserBySetupTokenHash(ctx context.Context, tokenHash string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID) and
	// returns the stored row with its timestamps and normalized email.
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// CompleteSetup atomically sets the password hash, activates the account
	// and clears the setup token, conditioned on the token fingerprint still
	// being present. Returns ErrNotFound when the token was already consumed
	// or never existed, which is what makes redemption at-most-once under
	// concurrent attempts.
	CompleteSetup(ctx context.Context, tokenHash, passwordHash string) error

	// UpdateProfile applies the non-nil fields of the patch and bumps
	// updated_at. Returns ErrNotFound for unknown ids and ErrAlreadyExists
	// when a patched email collides with another user.
	UpdateProfile(ctx context.Context, userID string, patch UserProfilePatch) error

	// DeactivateUser flips is_active off. Returns ErrNotFound for unknown ids.
	DeactivateUser(ctx context.Context, userID string) error

	// ListUsers returns a page of users matching the filter, newest first,
	// plus the total match count.
	ListUsers(ctx context.Context, f ListFilter) ([]domain.User, int64, error)
}
