package domain

import (
	"errors"
	"strings"
	"time"
)

// SetupTokenTTL is how long a freshly minted password-setup token stays
// redeemable.
const SetupTokenTTL = 24 * time.Hour

type User struct {
	ID       string
	FullName string
	Email    string // stored lowercased, compared case-insensitively
	Address  string
	Role     Role
	IsActive bool

	// PasswordHash is empty until the setup flow completes.
	PasswordHash string

	// SetupTokenHash holds the fingerprint of the outstanding password-setup
	// token, nil once redeemed.
	SetupTokenHash      *string
	SetupTokenExpiresAt *time.Time

	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanAuthenticate reports whether the account is in a state where a password
// check is even worth running.
func (u User) CanAuthenticate() bool {
	return u.IsActive && u.PasswordHash != ""
}

// NormalizeEmail canonicalizes an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Role is the closed set of user roles. Unknown values are rejected at the
// data-entry boundary, never coerced.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", ErrUnknownRole
	}
}

// OneOf reports whether r is in the allow-list. This is the whole
// authorization decision; keeping it a pure function means route guards
// can't get it wrong in interesting ways.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
