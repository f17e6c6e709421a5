package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/upload"
)

func TestHandleCreateUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedActive(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	env.seedActive(t, "plain@example.com", "plainpass", domain.RoleUser)
	adminCookie := env.login(t, "admin@example.com", "adminpass")
	plainCookie := env.login(t, "plain@example.com", "plainpass")

	t.Run("admin creates a pending user", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/v1/users",
			`{"fullName":"New Tech","email":"newtech@example.com","role":"user","address":"2 Field Road"}`)
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.NotEmpty(t, data["setupToken"])

		user := data["user"].(map[string]any)
		require.Equal(t, "newtech@example.com", user["email"])
		require.Equal(t, "USER", user["role"])
		require.Equal(t, false, user["isActive"])
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/v1/users",
			`{"fullName":"Sneaky","email":"sneaky@example.com","role":"USER"}`)
		req.AddCookie(plainCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/api/v1/users",
			`{"fullName":"Nobody","email":"nobody@example.com","role":"USER"}`))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate email is a 400", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/v1/users",
			`{"fullName":"Dup","email":"admin@example.com","role":"USER"}`)
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t,
			"User with this email already exists", decodeEnvelope(t, rec).Message)
	})

	t.Run("bad role fails validation", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/v1/users",
			`{"fullName":"Odd Role","email":"odd@example.com","role":"OVERLORD"}`)
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleListUsers(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedActive(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	env.seedActive(t, "techone@example.com", "techpass", domain.RoleUser)
	env.seedActive(t, "techtwo@example.com", "techpass", domain.RoleUser)
	adminCookie := env.login(t, "admin@example.com", "adminpass")

	t.Run("pages through users", func(t *testing.T) {
		req := plainRequest(http.MethodGet, "/api/v1/users?page=1&limit=2")
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.EqualValues(t, 3, data["total"])
		require.Len(t, data["users"], 2)
	})

	t.Run("filters by role", func(t *testing.T) {
		req := plainRequest(http.MethodGet, "/api/v1/users?role=USER")
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.EqualValues(t, 2, data["total"])
	})

	t.Run("rejects a bad query", func(t *testing.T) {
		req := plainRequest(http.MethodGet, "/api/v1/users?page=zero")
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGetAndUpdateProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedActive(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	alice := env.seedActive(t, "alice@example.com", "alicepass", domain.RoleUser)
	bob := env.seedActive(t, "bob@example.com", "bobpass", domain.RoleUser)
	adminCookie := env.login(t, "admin@example.com", "adminpass")
	aliceCookie := env.login(t, "alice@example.com", "alicepass")

	t.Run("fetch a profile", func(t *testing.T) {
		req := plainRequest(http.MethodGet, "/api/v1/users/profile/"+bob.ID)
		req.AddCookie(aliceCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.Equal(t, bob.ID, data["id"])
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		req := plainRequest(http.MethodGet, "/api/v1/users/profile/01JUNKJUNKJUNKJUNKJUNKJUNK")
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("user updates own profile", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, "/api/v1/users/profile/"+alice.ID,
			`{"fullName":"Alice Renamed"}`)
		req.AddCookie(aliceCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.Equal(t, "Alice Renamed", data["fullName"])
	})

	t.Run("user cannot update someone else", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, "/api/v1/users/profile/"+bob.ID,
			`{"fullName":"Hijacked"}`)
		req.AddCookie(aliceCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin promotes a user", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, "/api/v1/users/profile/"+bob.ID,
			`{"role":"ADMIN"}`)
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.Equal(t, "ADMIN", data["role"])
	})
}

func TestHandleDeactivateUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedActive(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	victim := env.seedActive(t, "victim@example.com", "victimpw", domain.RoleUser)
	env.seedActive(t, "plain@example.com", "plainpass", domain.RoleUser)
	adminCookie := env.login(t, "admin@example.com", "adminpass")
	plainCookie := env.login(t, "plain@example.com", "plainpass")

	t.Run("non-admin is forbidden", func(t *testing.T) {
		req := plainRequest(http.MethodDelete, "/api/v1/users/profile/"+victim.ID)
		req.AddCookie(plainCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deactivates and login stops working", func(t *testing.T) {
		req := plainRequest(http.MethodDelete, "/api/v1/users/profile/"+victim.ID)
		req.AddCookie(adminCookie)
		rec := env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		loginRec := env.do(jsonRequest(http.MethodPost, "/api/v1/auth/login",
			`{"email":"victim@example.com","password":"victimpw"}`))
		require.Equal(t, http.StatusUnauthorized, loginRec.Code)
	})
}

func TestHandleUpload(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedActive(t, "uploader@example.com", "uploadpw", domain.RoleUser)
	cookie := env.login(t, "uploader@example.com", "uploadpw")

	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/pest-leadquotation/profile-pics/profile_1.png"}`)
	}))
	t.Cleanup(cdn.Close)

	env.router.Uploader = &upload.Cloudinary{
		CloudName:  "demo",
		APIKey:     "key",
		APISecret:  "secret",
		BaseURL:    cdn.URL,
		HTTPClient: cdn.Client(),
	}
	// Handlers capture the uploader at registration time.
	env.router.Mux = http.NewServeMux()
	env.router.ApplyRoutes()

	// pngHeader makes http.DetectContentType report image/png.
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	multipartReq := func(field, filename string, content []byte) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/users/upload-profile-picture", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.AddCookie(cookie)
		return req
	}

	t.Run("uploads an image", func(t *testing.T) {
		rec := env.do(multipartReq("profilePicture", "avatar.png", pngHeader))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		data := decodeEnvelope(t, rec).Data.(map[string]any)
		require.Contains(t, data["profilePictureUrl"], "res.cloudinary.com")
	})

	t.Run("rejects a non-image file", func(t *testing.T) {
		rec := env.do(multipartReq("profilePicture", "notes.txt", []byte("plain text, not pixels")))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Only image files are allowed", decodeEnvelope(t, rec).Message)
	})

	t.Run("rejects a missing file field", func(t *testing.T) {
		rec := env.do(multipartReq("wrong-field", "avatar.png", pngHeader))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "An image file is required", decodeEnvelope(t, rec).Message)
	})

	t.Run("rejects an oversized file", func(t *testing.T) {
		big := make([]byte, maxUploadBytes+1)
		copy(big, pngHeader)
		rec := env.do(multipartReq("profilePicture", "huge.png", big))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Image must be smaller than 5MB", decodeEnvelope(t, rec).Message)
	})

	t.Run("requires authentication", func(t *testing.T) {
		req := multipartReq("profilePicture", "avatar.png", pngHeader)
		req.Header.Del("Cookie")
		rec := env.do(req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
