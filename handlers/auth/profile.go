package auth

import (
	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FirstName    string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName     string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	ProfileImage string `json:"profile_image_url,omitempty" validate:"omitempty,url,max=512"`
	Department   string `json:"department,omitempty" validate:"omitempty,max=255"`
	Batch        string `json:"batch,omitempty" validate:"omitempty,max=50"`
	Bio          string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location     string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// OnboardingRequest captures the one-time setup a new user completes
// before they can see their college community
type OnboardingRequest struct {
	CollegeID  uint   `json:"college_id" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=student alumni"`
	Department string `json:"department,omitempty" validate:"omitempty,max=255"`
	Batch      string `json:"batch,omitempty" validate:"omitempty,max=50"`
}

// GetProfile retrieves the current user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var user model.User
	if err := h.db.Preload("College").First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, toUserResponse(&user))
}

// UpdateProfile updates the current user's profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	// Update fields if provided
	if req.FirstName != "" {
		user.FirstName = validation.SanitizeString(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = validation.SanitizeString(req.LastName)
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}
	if req.Department != "" {
		user.Department = validation.SanitizeString(req.Department)
	}
	if req.Batch != "" {
		user.Batch = validation.SanitizeString(req.Batch)
	}
	if req.Bio != "" {
		user.Bio = validation.StripHTML(req.Bio)
	}
	if req.Location != "" {
		user.Location = validation.SanitizeString(req.Location)
	}

	if err := h.db.Save(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, toUserResponse(&user))
}

// CompleteOnboarding attaches the user to a college and records their role.
// Admins keep their role; everyone else picks student or alumni.
func (h *AuthHandler) CompleteOnboarding(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// College must exist
	var college model.College
	if err := h.db.First(&college, req.CollegeID).Error; err != nil {
		return response.BadRequest(c, "College not found")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	user.CollegeID = &college.ID
	if user.Role != model.RoleAdmin {
		user.Role = req.Role
	}
	user.Department = validation.SanitizeString(req.Department)
	user.Batch = validation.SanitizeString(req.Batch)
	user.IsOnboarded = true

	if err := h.db.Save(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to complete onboarding")
	}

	return response.Success(c, toUserResponse(&user))
}
