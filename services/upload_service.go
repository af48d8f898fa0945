package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/services/spaces"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds the maximum allowed size")
)

// MaxImageSize caps uploaded images at 5 MB
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService handles user image uploads to object storage
type UploadService struct {
	client *spaces.SpacesClient
}

// NewUploadService creates a new upload service
func NewUploadService(client *spaces.SpacesClient) *UploadService {
	return &UploadService{client: client}
}

// UploadImage validates and stores an image, returning its public URL.
// Keys are namespaced per user and dated so nothing ever collides.
func (s *UploadService) UploadImage(ctx context.Context, userID uint, filename, contentType string, data []byte) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", ErrUnsupportedImageType
	}
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	// Keep the original extension when it matches the declared type
	if orig := strings.ToLower(filepath.Ext(filename)); orig == ext || (orig == ".jpeg" && ext == ".jpg") {
		ext = orig
	}

	key := fmt.Sprintf("uploads/%d/%s/%s%s", userID, time.Now().Format("2006-01"), uuid.New().String(), ext)
	url, err := s.client.UploadBytes(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return url, nil
}
