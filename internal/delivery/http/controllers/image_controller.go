package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/domain"

	"github.com/google/uuid"
)

// maxImageBytes caps uploads at 5 MiB.
const maxImageBytes = 5 << 20

// extensions for accepted image content types.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UploadImageResponse is the response body for POST /images.
type UploadImageResponse struct {
	URL string `json:"url"`
}

// UploadImageSuccessResponse is the success response envelope for POST /images (201).
type UploadImageSuccessResponse struct {
	Data  UploadImageResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ImageController handles avatar, logo, and banner image uploads.
type ImageController struct {
	Logger *slog.Logger
	Store  domain.ImageStore
}

// NewImageController creates an ImageController with the given logger and store.
func NewImageController(logger *slog.Logger, store domain.ImageStore) *ImageController {
	return &ImageController{
		Logger: logger,
		Store:  store,
	}
}

// Upload godoc
// @Summary Upload an image
// @Description Upload an image (multipart field "file", max 5 MiB, jpeg/png/webp). Returns a stable public URL that can be stored as an avatar, logo, or banner reference. Requires Bearer token.
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} controllers.UploadImageSuccessResponse "data contains the public URL"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /images [post]
func (c *ImageController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form or file too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "content type must be image/jpeg, image/png, or image/webp")
		return
	}

	key := fmt.Sprintf("images/%s.%s", uuid.NewString(), ext)
	url, err := c.Store.Upload(r.Context(), key, contentType, file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, UploadImageResponse{URL: url})
}
