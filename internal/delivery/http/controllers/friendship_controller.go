package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/delivery/http/middleware"
	"eventcompanion/internal/domain"
)

// FriendRequestRequest is the request body for POST /friendships.
type FriendRequestRequest struct {
	FriendCode string `json:"friend_code"`
}

// Validate implements Validator.
func (f FriendRequestRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.FriendCode) == "" {
		errs = append(errs, "friend_code is required")
	}
	return errs
}

// FriendshipSuccessResponse is the success response envelope for friendship write operations.
type FriendshipSuccessResponse struct {
	Data  *domain.Friendship `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListFriendshipsSuccessResponse is the success response envelope for GET /friendships (200).
type ListFriendshipsSuccessResponse struct {
	Data  []*domain.FriendshipWithUser `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// FriendshipController handles the friend request workflow.
type FriendshipController struct {
	Logger  *slog.Logger
	Service domain.FriendshipService
}

// NewFriendshipController creates a FriendshipController with the given logger and service.
func NewFriendshipController(logger *slog.Logger, svc domain.FriendshipService) *FriendshipController {
	return &FriendshipController{
		Logger:  logger,
		Service: svc,
	}
}

// Request godoc
// @Summary Send a friend request
// @Description Send a friend request to the user holding the given friend code. A pair of users has at most one friendship record. Requires Bearer token.
// @Tags friendships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FriendRequestRequest true "Target friend code"
// @Success 201 {object} controllers.FriendshipSuccessResponse "data contains the pending friendship"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships [post]
func (c *FriendshipController) Request(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req FriendRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	code := strings.TrimSpace(strings.ToUpper(req.FriendCode))
	friendship, err := c.Service.Request(r.Context(), userID, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no user with that friend code")
			return
		}
		if errors.Is(err, domain.ErrAlreadyFriends) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "a friendship with that user already exists")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, friendship)
}

// List godoc
// @Summary List friendships
// @Description Returns all friendship records involving the caller, each with the counterpart's profile. Includes pending requests in both directions. Requires Bearer token.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListFriendshipsSuccessResponse "data contains the friendships"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships [get]
func (c *FriendshipController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	friendships, err := c.Service.List(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, friendships)
}

// Accept godoc
// @Summary Accept a friend request
// @Description Accept a pending friend request. Only the non-requesting side may accept. Requires Bearer token.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param friendshipID path string true "Friendship ID"
// @Success 200 {object} controllers.FriendshipSuccessResponse "data contains the accepted friendship"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships/{friendshipID}/accept [post]
func (c *FriendshipController) Accept(w http.ResponseWriter, r *http.Request) {
	c.runDecision(w, r, c.Service.Accept)
}

// Reject godoc
// @Summary Reject a friend request
// @Description Reject a pending friend request. Only the non-requesting side may reject. Requires Bearer token.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param friendshipID path string true "Friendship ID"
// @Success 200 {object} controllers.FriendshipSuccessResponse "data contains the rejected friendship"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships/{friendshipID}/reject [post]
func (c *FriendshipController) Reject(w http.ResponseWriter, r *http.Request) {
	c.runDecision(w, r, c.Service.Reject)
}

func (c *FriendshipController) runDecision(w http.ResponseWriter, r *http.Request,
	decide func(ctx context.Context, friendshipID, callerID string) (*domain.Friendship, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	friendshipID := r.PathValue("friendshipID")
	if friendshipID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing friendshipID")
		return
	}
	friendship, err := decide(r.Context(), friendshipID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "friendship not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the request recipient may decide a pending request")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, friendship)
}

// Remove godoc
// @Summary Remove a friendship
// @Description Delete a friendship record. Either side may remove an accepted friendship; the requester may cancel a pending one. Requires Bearer token.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param friendshipID path string true "Friendship ID"
// @Success 200 {object} helpers.APIResponse "data contains {\"deleted\": true}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships/{friendshipID} [delete]
func (c *FriendshipController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	friendshipID := r.PathValue("friendshipID")
	if friendshipID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing friendshipID")
		return
	}
	if err := c.Service.Remove(r.Context(), friendshipID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "friendship not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not a member of this friendship")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
