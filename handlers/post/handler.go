package post

import (
	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"gorm.io/gorm"
)

// PostHandler handles the college feed: posts, likes and comments
type PostHandler struct {
	db                  *gorm.DB
	validator           *validation.Validator
	feedService         *services.FeedService
	notificationService *services.NotificationService
}

// NewPostHandler creates a new post handler
func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{
		db:                  db,
		validator:           validation.NewValidator(),
		feedService:         services.NewFeedService(db),
		notificationService: services.NewNotificationService(db),
	}
}
