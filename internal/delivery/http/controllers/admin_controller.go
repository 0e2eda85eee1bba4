package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/domain"
)

// ReviewRequest is the request body for admin approval decisions.
type ReviewRequest struct {
	Status string `json:"status"` // "approved" or "rejected"
}

// Validate implements Validator.
func (rr ReviewRequest) Validate() []string {
	var errs []string
	status := domain.ApprovalStatus(strings.TrimSpace(strings.ToLower(rr.Status)))
	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		errs = append(errs, "status must be \"approved\" or \"rejected\"")
	}
	return errs
}

// ListUsersSuccessResponse is the success response envelope for GET /admin/users (200).
type ListUsersSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCompaniesSuccessResponse is the success response envelope for GET /admin/companies (200).
type ListCompaniesSuccessResponse struct {
	Data  []*domain.Company `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AdminController handles the administrator approval workflows.
type AdminController struct {
	Logger         *slog.Logger
	UserService    domain.UserService
	CompanyService domain.CompanyService
}

// NewAdminController creates an AdminController with the given logger and services.
func NewAdminController(logger *slog.Logger, users domain.UserService, companies domain.CompanyService) *AdminController {
	return &AdminController{
		Logger:         logger,
		UserService:    users,
		CompanyService: companies,
	}
}

// statusFilter reads the ?status= query parameter, defaulting to pending.
func statusFilter(r *http.Request) (domain.ApprovalStatus, bool) {
	raw := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("status")))
	if raw == "" {
		return domain.ApprovalPending, true
	}
	status := domain.ApprovalStatus(raw)
	return status, status.Valid()
}

// ListUsers godoc
// @Summary List user accounts by approval status
// @Description Returns user accounts filtered by approval status (?status=pending|approved|rejected, default pending). Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Approval status filter" Enums(pending, approved, rejected)
// @Success 200 {object} controllers.ListUsersSuccessResponse "data contains the users"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
		return
	}
	users, err := c.UserService.ListByStatus(r.Context(), status)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// ReviewUser godoc
// @Summary Approve or reject a user account
// @Description Sets the approval status of a user account and notifies the user by email. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body ReviewRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains {\"status\": <new status>}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{userID}/review [post]
func (c *AdminController) ReviewUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	var req ReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	status := domain.ApprovalStatus(strings.TrimSpace(strings.ToLower(req.Status)))
	if err := c.UserService.Review(r.Context(), userID, status); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": string(status)})
}

// ListCompanies godoc
// @Summary List company accounts by approval status
// @Description Returns company accounts filtered by approval status (?status=pending|approved|rejected, default pending). Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Approval status filter" Enums(pending, approved, rejected)
// @Success 200 {object} controllers.ListCompaniesSuccessResponse "data contains the companies"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/companies [get]
func (c *AdminController) ListCompanies(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
		return
	}
	companies, err := c.CompanyService.ListByStatus(r.Context(), status)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, companies)
}

// ReviewCompany godoc
// @Summary Approve or reject a company account
// @Description Sets the approval status of a company account and notifies the owner by email. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID"
// @Param body body ReviewRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains {\"status\": <new status>}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/companies/{companyID}/review [post]
func (c *AdminController) ReviewCompany(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("companyID")
	if companyID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing companyID")
		return
	}
	var req ReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	status := domain.ApprovalStatus(strings.TrimSpace(strings.ToLower(req.Status)))
	if err := c.CompanyService.Review(r.Context(), companyID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "company not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": string(status)})
}
