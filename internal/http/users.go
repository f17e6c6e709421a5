package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/internal/store"
	"github.com/pestlead/leadquote/internal/upload"
)

// maxUploadBytes caps profile picture uploads at 5 MiB.
const maxUploadBytes = 5 << 20

type CreateUserRequest struct {
	FullName          string `json:"fullName"          validate:"required,min=2,max=100"`
	Email             string `json:"email"             validate:"required,email"`
	Address           string `json:"address"           validate:"omitempty,max=255"`
	Role              string `json:"role"              validate:"required,oneof=ADMIN USER admin user"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,url"`
}

type UpdateProfileRequest struct {
	FullName          *string `json:"fullName"          validate:"omitempty,min=2,max=100"`
	Email             *string `json:"email"             validate:"omitempty,email"`
	Address           *string `json:"address"           validate:"omitempty,max=255"`
	Role              *string `json:"role"              validate:"omitempty,oneof=ADMIN USER admin user"`
	ProfilePictureURL *string `json:"profilePictureUrl" validate:"omitempty,url"`
}

// CreatedUserData carries the new user plus the one-time setup token. This
// is the only place the raw token is ever exposed.
type CreatedUserData struct {
	User       UserPayload `json:"user"`
	SetupToken string      `json:"setupToken"`
}

type UserListData struct {
	Users []UserPayload `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type UploadData struct {
	ProfilePictureURL string `json:"profilePictureUrl"`
}

type DeactivatedData struct {
	ID       string `json:"id"`
	IsActive bool   `json:"isActive"`
}

type UserHandler struct {
	UserService *service.UserService
	Uploader    *upload.Cloudinary
}

// HandleCreate godoc
//
//	@Summary		Create User Endpoint
//	@Description	Provision a new user in the pending state and mint their password setup token
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateUserRequest	true	"New user details"
//	@Success		201		{object}	Envelope			"success, message, data (user, setupToken)"
//	@Failure		400		{object}	Envelope			"validation failure or duplicate email"
//	@Failure		403		{object}	Envelope			"caller is not an admin"
//	@Router			/api/v1/users [post].
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respond(w, http.StatusBadRequest, "Role must be one of: ADMIN, USER", nil)
		return
	}

	user, setupToken, err := h.UserService.Create(ctx, service.CreateUserInput{
		FullName:          req.FullName,
		Email:             req.Email,
		Address:           req.Address,
		Role:              role,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	respond(w, http.StatusCreated, "User created successfully", CreatedUserData{
		User:       toUserPayload(user),
		SetupToken: setupToken,
	})
}

// HandleList godoc
//
//	@Summary		List Users Endpoint
//	@Description	Page through users with optional search and role/active filters
//	@Tags			Users
//	@Produce		json
//	@Param			page		query		int		false	"1-based page number"
//	@Param			limit		query		int		false	"page size (default 10)"
//	@Param			search		query		string	false	"matches name or email"
//	@Param			role		query		string	false	"ADMIN or USER"
//	@Param			isActive	query		bool	false	"filter on active state"
//	@Success		200			{object}	Envelope	"success, message, data (users, total, page, limit)"
//	@Failure		403			{object}	Envelope	"caller is not an admin"
//	@Router			/api/v1/users [get].
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := listFilterFromQuery(r)
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	users, total, err := h.UserService.List(ctx, filter)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	respond(w, http.StatusOK, "Users fetched successfully", UserListData{
		Users: toUserPayloads(users),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// HandleGet godoc
//
//	@Summary		Get User Endpoint
//	@Description	Fetch a single user profile by id
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string		true	"user id"
//	@Success		200	{object}	Envelope	"success, message, data (user)"
//	@Failure		404	{object}	Envelope	"unknown user"
//	@Router			/api/v1/users/profile/{id} [get].
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, "User fetched successfully", toUserPayload(user))
}

// HandleUpdate godoc
//
//	@Summary		Update Profile Endpoint
//	@Description	Partially update a user profile; users may edit themselves, admins anyone, role changes admin-only
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"user id"
//	@Param			request	body		UpdateProfileRequest	true	"fields to change"
//	@Success		200		{object}	Envelope				"success, message, data (user)"
//	@Failure		403		{object}	Envelope				"not own profile and not admin"
//	@Failure		404		{object}	Envelope				"unknown user"
//	@Router			/api/v1/users/profile/{id} [put].
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := IdentityFrom(ctx)
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := service.UpdateProfileInput{
		FullName:          req.FullName,
		Email:             req.Email,
		Address:           req.Address,
		ProfilePictureURL: req.ProfilePictureURL,
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			respond(w, http.StatusBadRequest, "Role must be one of: ADMIN, USER", nil)
			return
		}
		in.Role = &role
	}

	user, err := h.UserService.UpdateProfile(ctx, identity, r.PathValue("id"), in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, "Profile updated successfully", toUserPayload(user))
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate User Endpoint
//	@Description	Soft-delete a user; the record remains but the account can no longer sign in
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string		true	"user id"
//	@Success		200	{object}	Envelope	"success, message"
//	@Failure		403	{object}	Envelope	"caller is not an admin"
//	@Failure		404	{object}	Envelope	"unknown user"
//	@Router			/api/v1/users/profile/{id} [delete].
func (h *UserHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	if err := h.UserService.Deactivate(ctx, userID); err != nil {
		writeError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, "User deactivated successfully", DeactivatedData{
		ID:       userID,
		IsActive: false,
	})
}

// HandleUpload godoc
//
//	@Summary		Profile Picture Upload Endpoint
//	@Description	Accept an image up to 5 MiB and return its CDN delivery URL
//	@Tags			Users
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			profilePicture	formData	file	true	"image file"
//	@Success		200		{object}	Envelope	"success, message, data (url)"
//	@Failure		400		{object}	Envelope	"missing, oversized or non-image file"
//	@Router			/api/v1/users/upload-profile-picture [post].
func (h *UserHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+4096)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond(w, http.StatusBadRequest, "Image must be smaller than 5MB", nil)
		return
	}

	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		respond(w, http.StatusBadRequest, "An image file is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		respond(w, http.StatusBadRequest, "Image must be smaller than 5MB", nil)
		return
	}

	// Sniff the real content type rather than trusting the client header.
	var sniff [512]byte
	n, _ := file.Read(sniff[:])
	if !strings.HasPrefix(http.DetectContentType(sniff[:n]), "image/") {
		respond(w, http.StatusBadRequest, "Only image files are allowed", nil)
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		writeError(ctx, w, err)
		return
	}

	url, err := h.Uploader.UploadProfilePicture(ctx, file, header.Filename)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, "Image uploaded successfully",
		UploadData{ProfilePictureURL: url})
}

func listFilterFromQuery(r *http.Request) (store.ListFilter, error) {
	q := r.URL.Query()
	var filter store.ListFilter

	filter.Search = strings.TrimSpace(q.Get("search"))

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, errInvalidQuery("page must be a positive integer")
		}
		filter.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, errInvalidQuery("limit must be a positive integer")
		}
		filter.Limit = limit
	}
	if raw := q.Get("role"); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return filter, errInvalidQuery("role must be one of: ADMIN, USER")
		}
		filter.Role = &role
	}
	if raw := q.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errInvalidQuery("isActive must be true or false")
		}
		filter.IsActive = &active
	}
	return filter, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string { return string(e) }
