package college

import (
	"errors"
	"strconv"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CollegeHandler handles the college directory and stats
type CollegeHandler struct {
	db             *gorm.DB
	validator      *validation.Validator
	collegeService *services.CollegeService
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(db *gorm.DB) *CollegeHandler {
	return &CollegeHandler{
		db:             db,
		validator:      validation.NewValidator(),
		collegeService: services.NewCollegeService(db),
	}
}

// CreateCollegeRequest represents a new college entry
type CreateCollegeRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=255"`
	Domain string `json:"domain,omitempty" validate:"omitempty,max=255"`
}

// ListColleges returns all colleges, ordered by name. Used by the
// onboarding picker, so it stays unauthenticated-friendly.
func (h *CollegeHandler) ListColleges(c *fiber.Ctx) error {
	colleges, err := h.collegeService.ListColleges(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load colleges")
	}
	return response.Success(c, colleges)
}

// GetCollege returns a single college
func (h *CollegeHandler) GetCollege(c *fiber.Ctx) error {
	collegeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}

	college, err := h.collegeService.GetCollege(c.Context(), uint(collegeID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}
	return response.Success(c, college)
}

// CreateCollege adds a college to the directory (admin only, routed behind
// RequireAdmin)
func (h *CollegeHandler) CreateCollege(c *fiber.Ctx) error {
	var req CreateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	college := model.College{
		Name:   validation.SanitizeString(req.Name),
		Domain: validation.SanitizeString(req.Domain),
	}
	if err := h.db.Create(&college).Error; err != nil {
		return response.InternalServerError(c, "Failed to create college")
	}

	return response.Created(c, college)
}

// GetStats returns member and post counts for a college
func (h *CollegeHandler) GetStats(c *fiber.Ctx) error {
	collegeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}

	stats, err := h.collegeService.GetCollegeStats(c.Context(), uint(collegeID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to compute stats")
	}

	return response.Success(c, stats)
}
