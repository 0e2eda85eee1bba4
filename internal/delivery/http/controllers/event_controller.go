package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/domain"
	"eventcompanion/internal/schedule"
)

// timeNow is swapped in tests.
var timeNow = time.Now

var (
	dateRegexp = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	timeRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// parseStartsAt combines a DD/MM/YYYY date and an HH:MM time into a local instant.
func parseStartsAt(date, clock string) (time.Time, error) {
	dm := dateRegexp.FindStringSubmatch(date)
	tm := timeRegexp.FindStringSubmatch(clock)
	if dm == nil || tm == nil {
		return time.Time{}, fmt.Errorf("invalid date or time format")
	}
	t, err := time.ParseInLocation("02/01/2006 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// CreateEventRequest is the request body for POST /events.
// Date is DD/MM/YYYY, Time is HH:MM (24h), Duration is a human duration
// string such as "1 hora e 30 minutos".
type CreateEventRequest struct {
	Title    string `json:"title"`
	VenueID  string `json:"venue_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.VenueID) == "" {
		errs = append(errs, "venue_id is required")
	}
	if !dateRegexp.MatchString(c.Date) {
		errs = append(errs, "date must be in DD/MM/YYYY format")
	}
	if !timeRegexp.MatchString(c.Time) {
		errs = append(errs, "time must be in HH:MM 24h format")
	}
	if schedule.ParseDuration(c.Duration) <= 0 {
		errs = append(errs, "duration must name at least one hour or minute, e.g. \"1 hora e 30 minutos\"")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields
// optional; date and time must be updated together.
type UpdateEventRequest struct {
	Title    *string `json:"title"`
	VenueID  *string `json:"venue_id"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Duration *string `json:"duration"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.VenueID != nil && strings.TrimSpace(*u.VenueID) == "" {
		errs = append(errs, "venue_id cannot be empty")
	}
	if (u.Date == nil) != (u.Time == nil) {
		errs = append(errs, "date and time must be updated together")
	}
	if u.Date != nil && !dateRegexp.MatchString(*u.Date) {
		errs = append(errs, "date must be in DD/MM/YYYY format")
	}
	if u.Time != nil && !timeRegexp.MatchString(*u.Time) {
		errs = append(errs, "time must be in HH:MM 24h format")
	}
	if u.Duration != nil && schedule.ParseDuration(*u.Duration) <= 0 {
		errs = append(errs, "duration must name at least one hour or minute")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event write operations.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventWithVenueSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type EventWithVenueSuccessResponse struct {
	Data  *domain.EventWithVenue `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events/today (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.EventWithVenue `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// EventController handles the line-up endpoints. Write operations are admin only.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an event
// @Description Create a line-up entry at a venue. Date is DD/MM/YYYY, time is HH:MM (24h), duration is a human string like "1 hora e 30 minutos". Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	startsAt, err := parseStartsAt(req.Date, req.Time)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), strings.TrimSpace(req.Title), strings.TrimSpace(req.VenueID), startsAt, schedule.ParseDuration(req.Duration))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event data or unknown venue")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetByID godoc
// @Summary Get an event by ID
// @Description Returns the event with its resolved venue. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventWithVenueSuccessResponse "data contains the event and its venue"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	result, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListToday godoc
// @Summary List today's line-up
// @Description Returns the events starting today, each with its resolved venue, ordered by start time. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains today's events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/today [get]
func (c *EventController) ListToday(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListToday(r.Context(), timeNow())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Update godoc
// @Summary Update an event
// @Description Update an event's title, venue, schedule, and/or duration. Date and time must be provided together. Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var startsAt *time.Time
	if req.Date != nil && req.Time != nil {
		t, err := parseStartsAt(*req.Date, *req.Time)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		startsAt = &t
	}
	var durationMinutes *int
	if req.Duration != nil {
		m := schedule.ParseDuration(*req.Duration)
		durationMinutes = &m
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, req.Title, req.VenueID, startsAt, durationMinutes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes a line-up entry. Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains {\"deleted\": true}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
