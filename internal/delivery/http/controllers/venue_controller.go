package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/domain"
)

// CreateVenueRequest is the request body for POST /venues.
type CreateVenueRequest struct {
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Validate implements Validator.
func (v CreateVenueRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(v.Description) == "" {
		errs = append(errs, "description is required")
	}
	errs = append(errs, validateCoordinates(v.Latitude, v.Longitude)...)
	return errs
}

// UpdateVenueRequest is the request body for PATCH /venues/{venueID}. All fields optional.
type UpdateVenueRequest struct {
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Validate implements Validator.
func (v UpdateVenueRequest) Validate() []string {
	var errs []string
	if v.Description != nil && strings.TrimSpace(*v.Description) == "" {
		errs = append(errs, "description cannot be empty")
	}
	if (v.Latitude == nil) != (v.Longitude == nil) {
		errs = append(errs, "latitude and longitude must be updated together")
	}
	if v.Latitude != nil && v.Longitude != nil {
		errs = append(errs, validateCoordinates(*v.Latitude, *v.Longitude)...)
	}
	return errs
}

func validateCoordinates(lat, lng float64) []string {
	var errs []string
	if lat < -90 || lat > 90 {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	return errs
}

// VenueSuccessResponse is the success response envelope for single-venue operations.
type VenueSuccessResponse struct {
	Data  *domain.Venue     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListVenuesSuccessResponse is the success response envelope for GET /venues (200).
type ListVenuesSuccessResponse struct {
	Data  []*domain.Venue   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VenueController handles venue CRUD. All write operations are admin only.
type VenueController struct {
	Logger     *slog.Logger
	Repository domain.VenueRepository
}

// NewVenueController creates a VenueController with the given logger and repository.
func NewVenueController(logger *slog.Logger, repo domain.VenueRepository) *VenueController {
	return &VenueController{
		Logger:     logger,
		Repository: repo,
	}
}

// Create godoc
// @Summary Create a venue
// @Description Create a named venue with coordinates. Events reference venues by ID. Admin only.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateVenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse "data contains the created venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := timeNow()
	venue := domain.NewVenue(strings.TrimSpace(req.Description), req.Latitude, req.Longitude, now, now)
	if err := c.Repository.Create(r.Context(), venue); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// List godoc
// @Summary List venues
// @Description Returns all venues. Requires Bearer token.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListVenuesSuccessResponse "data contains the venues"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) List(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Repository.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// GetByID godoc
// @Summary Get a venue by ID
// @Description Returns a single venue. Requires Bearer token.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the venue"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetByID(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	venue, err := c.Repository.GetByID(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// Update godoc
// @Summary Update a venue
// @Description Update a venue's description and/or coordinates. Coordinates must be updated together. Admin only.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Param body body UpdateVenueRequest true "Fields to update"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the updated venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [patch]
func (c *VenueController) Update(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	var req UpdateVenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Repository.Update(r.Context(), venueID, req.Description, req.Latitude, req.Longitude)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// Delete godoc
// @Summary Delete a venue
// @Description Deletes a venue. Fails if events still reference it. Admin only.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Success 200 {object} helpers.APIResponse "data contains {\"deleted\": true}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [delete]
func (c *VenueController) Delete(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	if err := c.Repository.Delete(r.Context(), venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
			return
		}
		if strings.Contains(err.Error(), "foreign key") {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "venue is referenced by events")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
