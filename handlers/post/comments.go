package post

import (
	"errors"
	"log"
	"strconv"

	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddCommentRequest represents a new comment
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// AddComment appends a comment to a post and returns the full updated
// comment list, oldest first, so the client can re-render the thread.
func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	content := validation.StripHTML(req.Content)
	if content == "" {
		return response.BadRequest(c, "Comment cannot be empty")
	}

	if _, err := h.feedService.AddComment(c.Context(), uint(postID), user.ID, content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to add comment")
	}

	// Notify the author best-effort; the comment already landed
	post, err := h.feedService.GetPost(c.Context(), uint(postID))
	if err == nil {
		if err := h.notificationService.NotifyPostComment(c.Context(), post, user); err != nil {
			log.Printf("Failed to create comment notification for post %d: %v", post.ID, err)
		}
	}

	comments, err := h.feedService.GetComments(c.Context(), uint(postID))
	if err != nil {
		return response.InternalServerError(c, "Failed to load comments")
	}

	return response.Created(c, comments)
}

// GetComments returns all comments on a post, oldest first
func (h *PostHandler) GetComments(c *fiber.Ctx) error {
	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	comments, err := h.feedService.GetComments(c.Context(), uint(postID))
	if err != nil {
		return response.InternalServerError(c, "Failed to load comments")
	}

	return response.Success(c, comments)
}
