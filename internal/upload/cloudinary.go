// Package upload pushes profile pictures to Cloudinary using its signed
// upload REST endpoint.
package upload

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// Folder is where all profile pictures land inside the Cloudinary
	// media library.
	Folder = "pest-leadquotation/profile-pics"

	defaultBaseURL = "https://api.cloudinary.com/v1_1"
	uploadTimeout  = 30 * time.Second
)

var ErrUploadFailed = errors.New("upload: cloudinary rejected the upload")

// Cloudinary is a minimal client for the image upload endpoint. The zero
// value is not usable; fill in the credentials.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string

	// BaseURL and HTTPClient exist so tests can point the client at a
	// local server. Both fall back to sane defaults when empty.
	BaseURL    string
	HTTPClient *http.Client

	// Now is stubbed in tests to pin timestamps and public ids.
	Now func() time.Time
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadProfilePicture streams the image to Cloudinary and returns the
// delivery URL. The public id is derived from the upload time so repeat
// uploads never collide.
func (c *Cloudinary) UploadProfilePicture(
	ctx context.Context,
	image io.Reader,
	filename string,
) (string, error) {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	publicID := fmt.Sprintf("profile_%d", now.UnixMilli())
	timestamp := strconv.FormatInt(now.Unix(), 10)

	params := map[string]string{
		"folder":    Folder,
		"public_id": publicID,
		"timestamp": timestamp,
	}
	params["signature"] = c.sign(params)
	params["api_key"] = c.APIKey

	body, contentType, err := buildMultipart(params, image, filename)
	if err != nil {
		return "", err
	}

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	url := fmt.Sprintf("%s/%s/image/upload", base, c.CloudName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: uploadTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("upload: decoding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || out.SecureURL == "" {
		msg := out.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, msg)
	}
	return out.SecureURL, nil
}

// sign produces the Cloudinary request signature: the parameters sorted by
// key, joined as a query string, with the API secret appended, hashed with
// SHA-1.
func (c *Cloudinary) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.APISecret))
	return hex.EncodeToString(sum[:])
}

func buildMultipart(
	params map[string]string,
	image io.Reader,
	filename string,
) (io.Reader, string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			for k, v := range params {
				if err := mw.WriteField(k, v); err != nil {
					return err
				}
			}
			part, err := mw.CreateFormFile("file", filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, image); err != nil {
				return err
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType(), nil
}
