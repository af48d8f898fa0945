package post

import (
	"errors"
	"log"
	"strconv"

	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ToggleLike flips the requester's like on a post and reports the new state
func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	isLiked, err := h.feedService.ToggleLike(c.Context(), uint(postID), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to toggle like")
	}

	// Notify the author best-effort; the like already landed
	if isLiked {
		post, err := h.feedService.GetPost(c.Context(), uint(postID))
		if err == nil {
			if err := h.notificationService.NotifyPostLiked(c.Context(), post, user); err != nil {
				log.Printf("Failed to create like notification for post %d: %v", post.ID, err)
			}
		}
	}

	return response.Success(c, fiber.Map{
		"is_liked": isLiked,
	})
}
