package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, full_name, email, address, role, is_active,
	password_hash, password_token_hash, password_token_expires_at,
	profile_picture_url, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	// email column is COLLATE NOCASE; normalize anyway so the index is used
	// consistently.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		domain.NormalizeEmail(email))
	return scanUser(row)
}

func (r *usersRepo) GetUserBySetupTokenHash(ctx context.Context, tokenHash string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE password_token_hash = ?`, tokenHash)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, full_name, email, address, role, is_active,
			password_hash, password_token_hash, password_token_expires_at,
			profile_picture_url, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.FullName,
		domain.NormalizeEmail(u.Email),
		u.Address,
		u.Role.String(),
		u.IsActive,
		nullIfEmpty(u.PasswordHash),
		mapOptionalString(u.SetupTokenHash),
		mapOptionalTime(u.SetupTokenExpiresAt),
		u.ProfilePictureURL,
		now,
		now,
	)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	u.Email = domain.NormalizeEmail(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

// CompleteSetup conditions the write on the token fingerprint still being in
// place, so exactly one of any concurrent redemption attempts wins.
func (r *usersRepo) CompleteSetup(ctx context.Context, tokenHash, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?,
		    password_token_hash = NULL,
		    password_token_expires_at = NULL,
		    is_active = 1,
		    updated_at = ?
		WHERE password_token_hash = ?`,
		passwordHash, time.Now().UTC(), tokenHash,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID string, patch store.UserProfilePatch) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if patch.FullName != nil {
		sets = append(sets, "full_name = ?")
		args = append(args, *patch.FullName)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, domain.NormalizeEmail(*patch.Email))
	}
	if patch.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *patch.Address)
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, patch.Role.String())
	}
	if patch.ProfilePictureURL != nil {
		sets = append(sets, "profile_picture_url = ?")
		args = append(args, *patch.ProfilePictureURL)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), userID)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", ")),
		args...,
	)
	if err != nil {
		return mapConstraint(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeactivateUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ListUsers(ctx context.Context, f store.ListFilter) ([]domain.User, int64, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if f.Search != "" {
		where = append(where, "(full_name LIKE ? OR email LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}
	if f.Role != nil {
		where = append(where, "role = ?")
		args = append(args, f.Role.String())
	}
	if f.IsActive != nil {
		where = append(where, "is_active = ?")
		args = append(args, *f.IsActive)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users`+clause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := max(f.Page, 1)
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}

	// ULIDs sort by creation time, so id DESC is newest-first.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+clause+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		append(args, limit, (page-1)*limit)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row *sql.Row) (domain.User, error) {
	u, err := scanUserRow(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func scanUserRow(row scannable) (domain.User, error) {
	var (
		u            domain.User
		role         string
		passwordHash sql.NullString
		tokenHash    sql.NullString
		tokenExpiry  sql.NullTime
	)

	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.Address,
		&role,
		&u.IsActive,
		&passwordHash,
		&tokenHash,
		&tokenExpiry,
		&u.ProfilePictureURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.Role(role)
	if passwordHash.Valid {
		u.PasswordHash = passwordHash.String
	}
	u.SetupTokenHash = mapNullString(tokenHash)
	u.SetupTokenExpiresAt = mapNullTime(tokenExpiry)

	return u, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
