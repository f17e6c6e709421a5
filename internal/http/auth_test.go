package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/pkg/httpx"
)

func TestHandleLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedActive(t, "alice@example.com", "hunter22", domain.RoleUser)

	t.Run("sets a hardened session cookie", func(t *testing.T) {
		cookie := env.login(t, "alice@example.com", "hunter22")
		require.NotEmpty(t, cookie.Value)
		require.True(t, cookie.HttpOnly)
		require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		require.Equal(t, "/", cookie.Path)
		require.Positive(t, cookie.MaxAge)
	})

	t.Run("returns the user in the envelope", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/login",
			`{"email":"alice@example.com","password":"hunter22"}`))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeEnvelope(t, rec)
		require.True(t, body.Success)
		require.Equal(t, "Login successful", body.Message)

		data := body.Data.(map[string]any)
		require.Equal(t, "alice@example.com", data["email"])
		// Credential material never appears in responses.
		require.NotContains(t, data, "passwordHash")
		require.NotContains(t, rec.Body.String(), "password_hash")
	})

	t.Run("wrong password is a 401", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/login",
			`{"email":"alice@example.com","password":"wrong-one"}`))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid credentials", decodeEnvelope(t, rec).Message)
	})

	t.Run("unknown email reads identically", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/login",
			`{"email":"ghost@example.com","password":"whatever"}`))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid credentials", decodeEnvelope(t, rec).Message)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/login",
			`{"email":"alice@example.com","password":"abcd"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeEnvelope(t, rec)
		require.Equal(t, "Password must be at least 5 characters long", body.Message)
		require.Equal(t, []FieldError{
			{Field: "Password", Message: "Password must be at least 5 characters long"},
		}, body.Errors)
	})

	t.Run("malformed email fails validation", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/login",
			`{"email":"not-an-email","password":"hunter22"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t,
			"Email must be a valid email address",
			decodeEnvelope(t, rec).Message)
	})
}

func TestHandleMe(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedActive(t, "bob@example.com", "bobpass", domain.RoleUser)
	cookie := env.login(t, "bob@example.com", "bobpass")

	t.Run("returns the caller's profile", func(t *testing.T) {
		req := plainRequest(http.MethodGet, "/api/v1/auth/me")
		req.AddCookie(cookie)
		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.Equal(t, user.ID, data["id"])
	})

	t.Run("no cookie is a 401", func(t *testing.T) {
		rec := env.do(plainRequest(http.MethodGet, "/api/v1/auth/me"))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is a 401", func(t *testing.T) {
		req := plainRequest(http.MethodGet, "/api/v1/auth/me")
		req.AddCookie(&http.Cookie{Name: httpx.SessionCookieName, Value: "junk"})
		rec := env.do(req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivated account loses its session", func(t *testing.T) {
		victim := env.seedActive(t, "victim@example.com", "victimpw", domain.RoleUser)
		victimCookie := env.login(t, "victim@example.com", "victimpw")

		require.NoError(t, env.users.Deactivate(t.Context(), victim.ID))

		req := plainRequest(http.MethodGet, "/api/v1/auth/me")
		req.AddCookie(victimCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(plainRequest(http.MethodPost, "/api/v1/auth/logout"))
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpx.SessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}

func TestHandleSetupPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, token, err := env.users.Create(t.Context(), service.CreateUserInput{
		FullName: "New Tech",
		Email:    "tech@example.com",
		Role:     domain.RoleUser,
	})
	require.NoError(t, err)

	t.Run("redeems the token and enables login", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/setup-password",
			fmt.Sprintf(`{"passwordToken":%q,"password":"fresh-password"}`, token)))
		require.Equal(t, http.StatusOK, rec.Code)

		env.login(t, "tech@example.com", "fresh-password")
	})

	t.Run("second redemption is rejected", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/setup-password",
			fmt.Sprintf(`{"passwordToken":%q,"password":"another-password"}`, token)))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Invalid or expired token", decodeEnvelope(t, rec).Message)
	})

	t.Run("missing token fails validation", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/setup-password",
			`{"password":"fresh-password"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Token is required", decodeEnvelope(t, rec).Message)
	})
}
