package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/delivery/http/middleware"
	"eventcompanion/internal/domain"
)

// UpdateUserRequest is the request body for PATCH /users/me. Both fields are optional.
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// Validate implements Validator.
func (u UpdateUserRequest) Validate() []string {
	var errs []string
	if u.DisplayName != nil && strings.TrimSpace(*u.DisplayName) == "" {
		errs = append(errs, "display_name cannot be empty")
	}
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		parsed, err := url.Parse(*u.AvatarURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errs = append(errs, "avatar_url must be an http(s) URL")
		}
	}
	return errs
}

// PublicProfile is the reduced profile returned when looking up a user by friend code.
type PublicProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	FriendCode  string `json:"friend_code"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// GetMeSuccessResponse is the success response envelope for GET /users/me (200).
type GetMeSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateUserSuccessResponse is the success response envelope for PATCH /users/me (200).
type UpdateUserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PublicProfileSuccessResponse is the success response envelope for GET /users/by-code/{friendCode} (200).
type PublicProfileSuccessResponse struct {
	Data  PublicProfile     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles user profile endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user's profile including friend code and approval status. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetMeSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update current user
// @Description Update the authenticated user's display name and/or avatar URL. Requires Bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateUserRequest true "Fields to update (display_name and/or avatar_url, both optional)"
// @Success 200 {object} controllers.UpdateUserSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.UpdateProfile(r.Context(), userID, req.DisplayName, req.AvatarURL)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// GetByFriendCode godoc
// @Summary Look up a user by friend code
// @Description Returns the reduced public profile (id, display name, friend code, avatar) of the user holding the given friend code. Used to preview a friend request target. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param friendCode path string true "Friend code"
// @Success 200 {object} controllers.PublicProfileSuccessResponse "data contains the public profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/by-code/{friendCode} [get]
func (c *UserController) GetByFriendCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(strings.ToUpper(r.PathValue("friendCode")))
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing friendCode")
		return
	}
	user, err := c.Service.GetByFriendCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no user with that friend code")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PublicProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		FriendCode:  user.FriendCode,
		AvatarURL:   user.AvatarURL,
	})
}
