package upload

import (
	"errors"
	"io"

	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles image uploads for posts and profiles
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler. The service is nil when
// object storage is not configured; uploads then return 503.
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage accepts a multipart "image" field and returns its public URL
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if h.uploadService == nil {
		return response.Error(c, fiber.StatusServiceUnavailable,
			"Image uploads are not configured", "UPLOADS_DISABLED")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read image file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
	if err != nil {
		return response.InternalServerError(c, "Failed to read image file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.uploadService.UploadImage(c.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedImageType) {
			return response.BadRequest(c, "Only JPEG, PNG, GIF and WebP images are supported")
		}
		if errors.Is(err, services.ErrImageTooLarge) {
			return response.BadRequest(c, "Image must be 5 MB or smaller")
		}
		return response.InternalServerError(c, "Failed to upload image")
	}

	return response.Created(c, fiber.Map{
		"url": url,
	})
}
