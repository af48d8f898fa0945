package post

import (
	"errors"
	"strconv"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePostRequest represents a new post
type CreatePostRequest struct {
	Title    string `json:"title,omitempty" validate:"omitempty,max=255"`
	Content  string `json:"content" validate:"required,min=1,max=10000"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=jobs advice memories events general"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url,max=512"`
	Location string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// UpdatePostRequest represents a post edit; nil fields are left untouched
type UpdatePostRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1,max=10000"`
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=jobs advice memories events general"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// CreatePost creates a post in the author's college
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	if user.CollegeID == nil {
		return response.BadRequest(c, "Complete onboarding before posting")
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Category == "" {
		req.Category = string(model.PostCategoryGeneral)
	}

	post := model.Post{
		AuthorID:  user.ID,
		CollegeID: *user.CollegeID,
		Title:     validation.SanitizeString(req.Title),
		Content:   validation.StripHTML(req.Content),
		Category:  model.PostCategory(req.Category),
		ImageURL:  req.ImageURL,
		Location:  validation.SanitizeString(req.Location),
	}

	if post.Content == "" {
		return response.BadRequest(c, "Post content cannot be empty")
	}

	if err := h.feedService.CreatePost(c.Context(), &post); err != nil {
		return response.InternalServerError(c, "Failed to create post")
	}

	return response.Created(c, post)
}

// UpdatePost edits a post the requester owns
func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	updates := services.PostUpdates{
		Title:    req.Title,
		Category: req.Category,
		Location: req.Location,
	}
	if req.Content != nil {
		content := validation.StripHTML(*req.Content)
		if content == "" {
			return response.BadRequest(c, "Post content cannot be empty")
		}
		updates.Content = &content
	}

	post, err := h.feedService.UpdatePost(c.Context(), uint(postID), user.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to update post")
	}

	return response.Success(c, post)
}

// DeletePost removes a post the requester owns
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	if err := h.feedService.DeletePost(c.Context(), uint(postID), user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to delete post")
	}

	return response.Success(c, fiber.Map{
		"message": "Post deleted successfully",
	})
}
