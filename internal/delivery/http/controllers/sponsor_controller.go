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

// PublishBannerRequest is the request body for POST /companies/{companyID}/banners.
type PublishBannerRequest struct {
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
}

// Validate implements Validator.
func (p PublishBannerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.ImageURL) == "" {
		errs = append(errs, "image_url is required")
	} else if !isHTTPURL(p.ImageURL) {
		errs = append(errs, "image_url must be an http(s) URL")
	}
	if p.LinkURL != "" && !isHTTPURL(p.LinkURL) {
		errs = append(errs, "link_url must be an http(s) URL")
	}
	return errs
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https")
}

// SetBannerActiveRequest is the request body for PATCH /banners/{bannerID}.
type SetBannerActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate implements Validator.
func (s SetBannerActiveRequest) Validate() []string {
	var errs []string
	if s.Active == nil {
		errs = append(errs, "active is required")
	}
	return errs
}

// BannerSuccessResponse is the success response envelope for single-banner operations.
type BannerSuccessResponse struct {
	Data  *domain.SponsorBanner `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListBannersSuccessResponse is the success response envelope for banner listings.
type ListBannersSuccessResponse struct {
	Data  []*domain.SponsorBanner `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// SponsorController handles sponsor banner publishing and the public carousel listing.
type SponsorController struct {
	Logger  *slog.Logger
	Service domain.SponsorService
}

// NewSponsorController creates a SponsorController with the given logger and service.
func NewSponsorController(logger *slog.Logger, svc domain.SponsorService) *SponsorController {
	return &SponsorController{
		Logger:  logger,
		Service: svc,
	}
}

// Publish godoc
// @Summary Publish a sponsor banner
// @Description Publish a banner for the company. Only the owner of an approved company may publish. Requires Bearer token.
// @Tags banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID"
// @Param body body PublishBannerRequest true "Banner data"
// @Success 201 {object} controllers.BannerSuccessResponse "data contains the created banner"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID}/banners [post]
func (c *SponsorController) Publish(w http.ResponseWriter, r *http.Request) {
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
	var req PublishBannerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	banner, err := c.Service.Publish(r.Context(), companyID, userID, strings.TrimSpace(req.ImageURL), strings.TrimSpace(req.LinkURL))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "company not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the owner of an approved company may publish banners")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, banner)
}

// ListActive godoc
// @Summary List active banners
// @Description Returns the active sponsor banners for the app carousel. Requires Bearer token.
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListBannersSuccessResponse "data contains the active banners"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /banners [get]
func (c *SponsorController) ListActive(w http.ResponseWriter, r *http.Request) {
	banners, err := c.Service.ListActive(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, banners)
}

// ListByCompany godoc
// @Summary List a company's banners
// @Description Returns all banners of the company, active or not. Only the owner may list. Requires Bearer token.
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Param companyID path string true "Company ID"
// @Success 200 {object} controllers.ListBannersSuccessResponse "data contains the company's banners"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies/{companyID}/banners [get]
func (c *SponsorController) ListByCompany(w http.ResponseWriter, r *http.Request) {
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
	banners, err := c.Service.ListByCompany(r.Context(), companyID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "company not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the owner may list the company's banners")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, banners)
}

// SetActive godoc
// @Summary Activate or deactivate a banner
// @Description Toggle a banner's active flag. Only the owning company's owner may toggle. Requires Bearer token.
// @Tags banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bannerID path string true "Banner ID"
// @Param body body SetBannerActiveRequest true "Active flag"
// @Success 200 {object} controllers.BannerSuccessResponse "data contains the updated banner"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /banners/{bannerID} [patch]
func (c *SponsorController) SetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	bannerID := r.PathValue("bannerID")
	if bannerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing bannerID")
		return
	}
	var req SetBannerActiveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	banner, err := c.Service.SetActive(r.Context(), bannerID, userID, *req.Active)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "banner not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the owner may manage the banner")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, banner)
}

// Delete godoc
// @Summary Delete a banner
// @Description Delete a banner. Only the owning company's owner may delete. Requires Bearer token.
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Param bannerID path string true "Banner ID"
// @Success 200 {object} helpers.APIResponse "data contains {\"deleted\": true}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /banners/{bannerID} [delete]
func (c *SponsorController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	bannerID := r.PathValue("bannerID")
	if bannerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing bannerID")
		return
	}
	if err := c.Service.Delete(r.Context(), bannerID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "banner not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the owner may manage the banner")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
