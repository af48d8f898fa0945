package event

import (
	"errors"
	"strconv"
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateEventRequest represents a new event
type CreateEventRequest struct {
	Title        string     `json:"title" validate:"required,min=1,max=255"`
	Description  string     `json:"description,omitempty" validate:"omitempty,max=10000"`
	Category     string     `json:"category,omitempty" validate:"omitempty,max=50"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Location     string     `json:"location,omitempty" validate:"omitempty,max=255"`
	IsVirtual    bool       `json:"is_virtual,omitempty"`
	MeetingLink  string     `json:"meeting_link,omitempty" validate:"omitempty,url,max=500"`
	MaxAttendees *int       `json:"max_attendees,omitempty" validate:"omitempty,min=1"`
}

// UpdateEventRequest represents an event edit; nil fields are left untouched
type UpdateEventRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
	Category     *string    `json:"category,omitempty" validate:"omitempty,max=50"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Location     *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	IsVirtual    *bool      `json:"is_virtual,omitempty"`
	MeetingLink  *string    `json:"meeting_link,omitempty" validate:"omitempty,url,max=500"`
	MaxAttendees *int       `json:"max_attendees,omitempty" validate:"omitempty,min=1"`
}

// ListEvents returns the authenticated user's college events
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	if user.CollegeID == nil {
		return response.BadRequest(c, "Complete onboarding to see your college events")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	events, total, err := h.eventService.GetEventsByCollege(c.Context(), services.EventListOptions{
		CollegeID: *user.CollegeID,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		ViewerID:  user.ID,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to load events")
	}

	return response.Paginated(c, events, response.CalculatePagination(page, limit, total))
}

// GetEvent returns a single event with organizer, attendee count and the
// requester's RSVP status
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.GetEvent(c.Context(), uint(eventID), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to load event")
	}

	return response.Success(c, event)
}

// CreateEvent creates an event in the organizer's college
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	if user.CollegeID == nil {
		return response.BadRequest(c, "Complete onboarding before creating events")
	}

	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return response.BadRequest(c, "End date cannot be before start date")
	}

	if req.Category == "" {
		req.Category = "general"
	}

	event := model.Event{
		Title:        validation.SanitizeString(req.Title),
		Description:  validation.StripHTML(req.Description),
		Category:     validation.SanitizeString(req.Category),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Location:     validation.SanitizeString(req.Location),
		IsVirtual:    req.IsVirtual,
		MeetingLink:  req.MeetingLink,
		MaxAttendees: req.MaxAttendees,
		OrganizerID:  user.ID,
		CollegeID:    *user.CollegeID,
	}

	if err := h.eventService.CreateEvent(c.Context(), &event); err != nil {
		return response.InternalServerError(c, "Failed to create event")
	}

	return response.Created(c, event)
}

// UpdateEvent edits an event the requester organizes
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	var req UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	updates := services.EventUpdates{
		Title:        req.Title,
		Category:     req.Category,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Location:     req.Location,
		IsVirtual:    req.IsVirtual,
		MeetingLink:  req.MeetingLink,
		MaxAttendees: req.MaxAttendees,
	}
	if req.Description != nil {
		description := validation.StripHTML(*req.Description)
		updates.Description = &description
	}

	event, err := h.eventService.UpdateEvent(c.Context(), uint(eventID), user.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to update event")
	}

	return response.Success(c, event)
}

// DeleteEvent removes an event the requester organizes
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.DeleteEvent(c.Context(), uint(eventID), user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to delete event")
	}

	return response.Success(c, fiber.Map{
		"message": "Event deleted successfully",
	})
}
