package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/pkg/slogx"
)

// writeError maps service sentinels to HTTP statuses and client-safe
// messages. Anything unmapped is logged and answered with a generic 500 so
// internals never leak into the envelope.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respond(w, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, service.ErrInvalidSetupToken):
		respond(w, http.StatusBadRequest, "Invalid or expired token", nil)
	case errors.Is(err, service.ErrSetupTokenExpired):
		respond(w, http.StatusBadRequest, "Invalid or expired token", nil)
	case errors.Is(err, service.ErrEmailTaken):
		respond(w, http.StatusBadRequest, "User with this email already exists", nil)
	case errors.Is(err, service.ErrUserNotFound):
		respond(w, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, service.ErrNotAllowed):
		respond(w, http.StatusForbidden, "You are not allowed to perform this action", nil)
	default:
		slogx.FromContext(ctx).Error("unhandled request error", slog.Any("error", err))
		respond(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}
