package event

import (
	"errors"
	"log"
	"strconv"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetAttendanceRequest represents an RSVP
type SetAttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=going maybe not_going"`
}

// SetAttendance records or updates the requester's RSVP for an event.
// Repeated calls with different statuses overwrite the previous one.
func (h *EventHandler) SetAttendance(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	var req SetAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if !model.IsValidAttendanceStatus(req.Status) {
		return response.BadRequest(c, "Status must be one of: going, maybe, not_going")
	}

	attendee, err := h.eventService.SetAttendance(c.Context(), uint(eventID), user.ID, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to set attendance")
	}

	// Notify the organizer best-effort; the RSVP already landed
	var event model.Event
	if err := h.db.First(&event, eventID).Error; err == nil {
		if err := h.notificationService.NotifyEventRSVP(c.Context(), &event, user, req.Status); err != nil {
			log.Printf("Failed to create RSVP notification for event %d: %v", event.ID, err)
		}
	}

	return response.Success(c, attendee)
}

// GetAttendees lists everyone with an RSVP on the event
func (h *EventHandler) GetAttendees(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	attendees, err := h.eventService.GetAttendees(c.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to load attendees")
	}

	return response.Success(c, attendees)
}
