package upload

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUploadProfilePicture(t *testing.T) {
	t.Parallel()

	fixed := time.Unix(1_750_000_000, 431*int64(time.Millisecond))

	var gotPath string
	var gotFields map[string]string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for k, vs := range r.MultipartForm.Value {
			gotFields[k] = vs[0]
		}
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		gotFile, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/%s/%s.png","public_id":"%s"}`,
			Folder, gotFields["public_id"], gotFields["public_id"])
	}))
	t.Cleanup(srv.Close)

	c := &Cloudinary{
		CloudName:  "demo",
		APIKey:     "key123",
		APISecret:  "secret456",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		Now:        func() time.Time { return fixed },
	}

	url, err := c.UploadProfilePicture(
		context.Background(), strings.NewReader("png-bytes"), "avatar.png")
	require.NoError(t, err)
	require.Contains(t, url, "profile_"+fmt.Sprint(fixed.UnixMilli()))

	require.Equal(t, "/demo/image/upload", gotPath)
	require.Equal(t, []byte("png-bytes"), gotFile)
	require.Equal(t, Folder, gotFields["folder"])
	require.Equal(t, "key123", gotFields["api_key"])

	// The signature covers folder, public_id and timestamp sorted by key,
	// with the secret appended.
	payload := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s",
		Folder, gotFields["public_id"], gotFields["timestamp"])
	sum := sha1.Sum([]byte(payload + "secret456"))
	require.Equal(t, hex.EncodeToString(sum[:]), gotFields["signature"])
}

func TestUploadProfilePictureError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid Signature"}}`)
	}))
	t.Cleanup(srv.Close)

	c := &Cloudinary{
		CloudName:  "demo",
		APIKey:     "key",
		APISecret:  "wrong",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	}

	_, err := c.UploadProfilePicture(
		context.Background(), strings.NewReader("x"), "a.png")
	require.ErrorIs(t, err, ErrUploadFailed)
	require.ErrorContains(t, err, "Invalid Signature")
}
