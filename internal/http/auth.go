package http

import (
	"net/http"
	"time"

	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/pkg/httpx"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

type SetupPasswordRequest struct {
	Token    string `json:"passwordToken" validate:"required"`
	Password string `json:"password"      validate:"required,min=5"`
}

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService

	SessionTTL    time.Duration
	SecureCookies bool
}

// HandleLogin godoc
//
//	@Summary		Login Endpoint
//	@Description	Verify email and password, then start a cookie session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	Envelope		"success, message, data (user)"
//	@Failure		400		{object}	Envelope		"validation failure"
//	@Failure		401		{object}	Envelope		"invalid credentials"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	httpx.SetSessionCookie(w, token, h.SessionTTL, h.SecureCookies)
	respond(w, http.StatusOK, "Login successful", toUserPayload(user))
}

// HandleLogout godoc
//
//	@Summary		Logout Endpoint
//	@Description	Clear the session cookie
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	Envelope	"success, message"
//	@Router			/api/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookie(w, h.SecureCookies)
	respond(w, http.StatusOK, "Logged out successfully", nil)
}

// HandleMe godoc
//
//	@Summary		Current User Endpoint
//	@Description	Return the profile of the authenticated caller
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	Envelope	"success, message, data (user)"
//	@Failure		401	{object}	Envelope	"no valid session"
//	@Router			/api/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := IdentityFrom(ctx)
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.UserService.Get(ctx, identity.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, "User fetched successfully", toUserPayload(user))
}

// HandleSetupPassword godoc
//
//	@Summary		Password Setup Endpoint
//	@Description	Redeem a one-time setup token to set the initial password and activate the account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SetupPasswordRequest	true	"Setup token and new password"
//	@Success		200		{object}	Envelope				"success, message"
//	@Failure		400		{object}	Envelope				"invalid or expired token"
//	@Router			/api/v1/auth/setup-password [post].
func (h *AuthHandler) HandleSetupPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SetupPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthService.SetupPassword(ctx, req.Token, req.Password); err != nil {
		writeError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, "Password set successfully. You can now log in.", nil)
}
