package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/internal/store/drivers/sqlite"
	"github.com/pestlead/leadquote/pkg/httpx"
	"github.com/pestlead/leadquote/pkg/jwtx"
	"github.com/pestlead/leadquote/pkg/slogx"
)

type testEnv struct {
	router *Router
	auth   *service.AuthService
	users  *service.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("router-test-secret"), "leadquote-test")
	require.NoError(t, err)

	auth := &service.AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     "leadquote-test",
		SessionTTL: time.Hour,
	}
	users := &service.UserService{
		Store:                    st,
		DefaultProfilePictureURL: "https://cdn.example.com/avatars/default.png",
	}

	logger := slogx.New(slogx.Config{
		Service: "leadquote-test",
		Level:   "error",
		Format:  "text",
	})

	router := NewRouter(signer, "test", st, logger)
	router.AuthService = auth
	router.UserService = users
	router.SessionTTL = time.Hour
	router.ApplyRoutes()

	return &testEnv{router: router, auth: auth, users: users}
}

// seedActive provisions a user and completes password setup so the account
// can sign in.
func (e *testEnv) seedActive(
	t *testing.T,
	email, password string,
	role domain.Role,
) domain.User {
	t.Helper()
	ctx := context.Background()

	created, token, err := e.users.Create(ctx, service.CreateUserInput{
		FullName: "Seeded User",
		Email:    email,
		Address:  "1 Seed Street",
		Role:     role,
	})
	require.NoError(t, err)
	require.NoError(t, e.auth.SetupPassword(ctx, token, password))

	got, err := e.users.Get(ctx, created.ID)
	require.NoError(t, err)
	return got
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func plainRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// login runs the login endpoint and returns the session cookie.
func (e *testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	rec := e.do(jsonRequest(http.MethodPost, "/api/v1/auth/login",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == httpx.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
