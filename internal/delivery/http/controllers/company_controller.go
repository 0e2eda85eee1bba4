package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/delivery/http/middleware"
	"eventcompanion/internal/domain"
)

// RegisterCompanyRequest is the request body for POST /companies.
type RegisterCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

// Validate implements Validator.
func (c RegisterCompanyRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// UpdateCompanyRequest is the request body for PATCH /companies/{companyID}. Both fields optional.
type UpdateCompanyRequest struct {
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

// Validate implements Validator.
func (c UpdateCompanyRequest) Validate() []string {
	return nil
}

// CompanySuccessResponse is the success response envelope for single-company operations.
type CompanySuccessResponse struct {
	Data  *domain.Company   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CompanyController handles company registration and profile endpoints.
type CompanyController struct {
	Logger  *slog.Logger
	Service domain.CompanyService
}

// NewCompanyController creates a CompanyController with the given logger and service.
func NewCompanyController(logger *slog.Logger, svc domain.CompanyService) *CompanyController {
	return &CompanyController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a company
// @Description Register a company account owned by the caller. The company starts pending and cannot publish banners until an administrator approves it. One company per user. Requires Bearer token.
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterCompanyRequest true "Company data"
// @Success 201 {object} controllers.CompanySuccessResponse "data contains the created company"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies [post]
func (c *CompanyController) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RegisterCompanyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	company, err := c.Service.Register(r.Context(), userID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), strings.TrimSpace(req.LogoURL))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "caller already owns a company")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, company)
}

// GetMine godoc
// @Summary Get my company
// @Description Returns the company owned by the caller, if any. Requires Bearer token.
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.CompanySuccessResponse "data contains the company"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/me [get]
func (c *CompanyController) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	company, err := c.Service.GetMine(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no company registered for this user")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, company)
}

// Update godoc
// @Summary Update a company profile
// @Description Update a company's description and/or logo URL. Only the owner may update. Requires Bearer token.
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID"
// @Param body body UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} controllers.CompanySuccessResponse "data contains the updated company"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID} [patch]
func (c *CompanyController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	companyID := r.PathValue("companyID")
	if companyID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing companyID")
		return
	}
	var req UpdateCompanyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	company, err := c.Service.UpdateProfile(r.Context(), companyID, userID, req.Description, req.LogoURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "company not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the owner may update the company")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, company)
}
