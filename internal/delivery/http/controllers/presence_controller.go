package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/delivery/http/middleware"
	"eventcompanion/internal/domain"
)

// ReportPresenceRequest is the request body for PUT /presence.
type ReportPresenceRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate implements Validator.
func (p ReportPresenceRequest) Validate() []string {
	return validateCoordinates(p.Latitude, p.Longitude)
}

// SetSharingRequest is the request body for PUT /presence/sharing.
type SetSharingRequest struct {
	Enabled *bool `json:"enabled"`
}

// Validate implements Validator.
func (s SetSharingRequest) Validate() []string {
	var errs []string
	if s.Enabled == nil {
		errs = append(errs, "enabled is required")
	}
	return errs
}

// MyStateResponse is the response body for GET /presence/me.
type MyStateResponse struct {
	State domain.SharingState `json:"state"`
}

// MyStateSuccessResponse is the success response envelope for GET /presence/me (200).
type MyStateSuccessResponse struct {
	Data  MyStateResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FriendPinsSuccessResponse is the success response envelope for GET /presence/friends (200).
type FriendPinsSuccessResponse struct {
	Data  []*domain.FriendPin `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// PresenceController handles location reporting and friend visibility.
type PresenceController struct {
	Logger  *slog.Logger
	Service domain.PresenceService
}

// NewPresenceController creates a PresenceController with the given logger and service.
func NewPresenceController(logger *slog.Logger, svc domain.PresenceService) *PresenceController {
	return &PresenceController{
		Logger:  logger,
		Service: svc,
	}
}

// Report godoc
// @Summary Report current position
// @Description Store the caller's current position. Rejected if location sharing is disabled. Clients poll this while sharing is on. Requires Bearer token.
// @Tags presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReportPresenceRequest true "Current coordinates"
// @Success 200 {object} helpers.APIResponse "data contains {\"reported\": true}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presence [put]
func (c *PresenceController) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ReportPresenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Report(r.Context(), userID, req.Latitude, req.Longitude, timeNow()); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "location sharing is disabled")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"reported": true})
}

// SetSharing godoc
// @Summary Enable or disable location sharing
// @Description Toggle location sharing. Disabling removes the stored position immediately; a failed removal is reported as an error rather than silently ignored. Requires Bearer token.
// @Tags presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetSharingRequest true "Sharing flag"
// @Success 200 {object} helpers.APIResponse "data contains {\"sharing_enabled\": <flag>}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presence/sharing [put]
func (c *PresenceController) SetSharing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SetSharingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetSharing(r.Context(), userID, *req.Enabled); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"sharing_enabled": *req.Enabled})
}

// MyState godoc
// @Summary Get my sharing state
// @Description Returns the caller's derived sharing state: not_sharing, sharing_no_event_active, or sharing_and_visible. Visibility requires an event window to be open and the caller to be within range of its venue. Requires Bearer token.
// @Tags presence
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MyStateSuccessResponse "data contains the state"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presence/me [get]
func (c *PresenceController) MyState(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	state, err := c.Service.MyState(r.Context(), userID, timeNow())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MyStateResponse{State: state})
}

// Friends godoc
// @Summary List visible friends
// @Description Returns map pins for accepted friends who are sharing, inside an open event window, and within range of its venue. Clients poll this to refresh the map. Requires Bearer token.
// @Tags presence
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.FriendPinsSuccessResponse "data contains the visible friend pins"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presence/friends [get]
func (c *PresenceController) Friends(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	pins, err := c.Service.VisibleFriends(r.Context(), userID, timeNow())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pins)
}
