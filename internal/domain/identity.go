package domain

// Identity is the authenticated caller as resolved by the session
// middleware. It carries just enough to make authorization decisions
// without another store round trip.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanManage reports whether the caller may modify the given user's
// profile: admins manage everyone, everyone manages themselves.
func (i Identity) CanManage(userID string) bool {
	return i.IsAdmin() || i.UserID == userID
}
