package event

import (
	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"gorm.io/gorm"
)

// EventHandler handles college events and attendance
type EventHandler struct {
	db                  *gorm.DB
	validator           *validation.Validator
	eventService        *services.EventService
	notificationService *services.NotificationService
}

// NewEventHandler creates a new event handler
func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{
		db:                  db,
		validator:           validation.NewValidator(),
		eventService:        services.NewEventService(db),
		notificationService: services.NewNotificationService(db),
	}
}
