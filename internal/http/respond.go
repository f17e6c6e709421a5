package http

import (
	"net/http"
	"time"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/pkg/httpx"
)

// Envelope is the uniform response shape for every JSON endpoint.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one entry of the per-field breakdown attached to
// validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respond(w http.ResponseWriter, code int, message string, data any) {
	httpx.WriteJSON(w, code, Envelope{
		Success: code < 400,
		Message: message,
		Data:    data,
	})
}

func respondValidation(w http.ResponseWriter, message string, fieldErrors []FieldError) {
	httpx.WriteJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

// UserPayload is the public view of a user record. Credential material and
// setup tokens never leave the server.
type UserPayload struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Address           string    `json:"address,omitempty"`
	Role              string    `json:"role"`
	IsActive          bool      `json:"isActive"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toUserPayload(u domain.User) UserPayload {
	return UserPayload{
		ID:                u.ID,
		FullName:          u.FullName,
		Email:             u.Email,
		Address:           u.Address,
		Role:              u.Role.String(),
		IsActive:          u.IsActive,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func toUserPayloads(users []domain.User) []UserPayload {
	out := make([]UserPayload, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPayload(u))
	}
	return out
}
