package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxPeekBytes bounds how much body the rate limiter will buffer.
const maxPeekBytes = 1 << 16

// peekBody reads the request body and puts it back so downstream handlers
// can still decode it.
func peekBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))

	return body, nil
}

// jsonStringField extracts a top-level string field from a JSON object,
// normalized for use as a rate-limit key.
func jsonStringField(body []byte, field string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}

	var val string
	if err := json.Unmarshal(obj[field], &val); err != nil {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(val))
}
