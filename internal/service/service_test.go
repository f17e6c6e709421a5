package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/internal/store"
	"github.com/pestlead/leadquote/internal/store/drivers/sqlite"
	"github.com/pestlead/leadquote/pkg/jwtx"
)

const testDefaultPicture = "https://cdn.example.com/avatars/default.png"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newServices(t *testing.T) (*service.AuthService, *service.UserService) {
	t.Helper()

	st := newTestStore(t)
	signer, err := jwtx.NewHS256([]byte("test-secret-please-ignore"), "leadquote-test")
	require.NoError(t, err)

	auth := &service.AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     "leadquote-test",
		SessionTTL: time.Hour,
	}
	users := &service.UserService{
		Store:                    st,
		DefaultProfilePictureURL: testDefaultPicture,
	}
	return auth, users
}

// activeUser provisions a user and walks it through password setup so it can
// log in.
func activeUser(
	t *testing.T,
	auth *service.AuthService,
	users *service.UserService,
	email, password string,
	role domain.Role,
) domain.User {
	t.Helper()
	ctx := context.Background()

	created, token, err := users.Create(ctx, service.CreateUserInput{
		FullName: "Test User",
		Email:    email,
		Address:  "1 Test Street",
		Role:     role,
	})
	require.NoError(t, err)
	require.NoError(t, auth.SetupPassword(ctx, token, password))

	got, err := users.Get(ctx, created.ID)
	require.NoError(t, err)
	return got
}
